package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(search, category string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

// fakeBalanceRepo implementa StockMoveRepository con saldos y conteos fijos
// por producto; el resto de operaciones no se usan en estos tests.
type fakeBalanceRepo struct {
	balances map[string]inventory.Balance
	counts   map[string]int64
}

func (r *fakeBalanceRepo) Create(move *entity.StockMove) error                  { return nil }
func (r *fakeBalanceRepo) GetByID(id string) (*entity.StockMove, error)        { return nil, nil }
func (r *fakeBalanceRepo) UpdateStatus(id, status string, t time.Time) error   { return nil }
func (r *fakeBalanceRepo) CountByOperation(opCode string) (int64, error)       { return 0, nil }
func (r *fakeBalanceRepo) CountByProduct(productID string) (int64, error) {
	return r.counts[productID], nil
}
func (r *fakeBalanceRepo) Balances(productID string) (inventory.Balance, error) {
	return r.balances[productID], nil
}
func (r *fakeBalanceRepo) List(search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return nil, nil
}
func (r *fakeBalanceRepo) ListBySourceType(locationType, search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return nil, nil
}
func (r *fakeBalanceRepo) ListByDestinationType(locationType, search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return nil, nil
}

func newProductFixture() (*usecase.ProductUseCase, *fakeProductRepo, *fakeBalanceRepo) {
	repo := newFakeProductRepo()
	moveRepo := &fakeBalanceRepo{
		balances: map[string]inventory.Balance{},
		counts:   map[string]int64{},
	}
	return usecase.NewProductUseCase(repo, moveRepo), repo, moveRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / cantidades derivadas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SKUDuplicado_Rechazado(t *testing.T) {
	uc, _, _ := newProductFixture()
	_, err := uc.Create(dto.CreateProductRequest{Name: "Tornillo M8", SKU: "TOR-M8"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Otro tornillo", SKU: "TOR-M8"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_UOMPorDefecto(t *testing.T) {
	uc, _, _ := newProductFixture()
	out, err := uc.Create(dto.CreateProductRequest{Name: "Tornillo M8", SKU: "TOR-M8"})
	require.NoError(t, err)
	assert.Equal(t, "Units", out.UOM)
}

func TestProductGetByID_IncluyeCantidadesDerivadas(t *testing.T) {
	uc, _, moveRepo := newProductFixture()
	created, err := uc.Create(dto.CreateProductRequest{
		Name: "Tornillo M8",
		SKU:  "TOR-M8",
		Cost: decimal.NewFromFloat(0.15),
	})
	require.NoError(t, err)

	moveRepo.balances[created.ID] = inventory.Balance{Incoming: 100, Outgoing: 30, Reserved: 25}

	out, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), out.OnHand)
	assert.Equal(t, int64(25), out.Reserved)
	assert.Equal(t, int64(45), out.FreeToUse)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — guard del historial
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_ConMovimientos_Conflict(t *testing.T) {
	uc, repo, moveRepo := newProductFixture()
	created, err := uc.Create(dto.CreateProductRequest{Name: "Tornillo M8", SKU: "TOR-M8"})
	require.NoError(t, err)

	moveRepo.counts[created.ID] = 3

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "borrar rompería el historial de movimientos")
	assert.Contains(t, repo.products, created.ID, "el producto sigue existiendo")
}

func TestProductDelete_SinMovimientos_Eliminado(t *testing.T) {
	uc, repo, _ := newProductFixture()
	created, err := uc.Create(dto.CreateProductRequest{Name: "Tornillo M8", SKU: "TOR-M8"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.NotContains(t, repo.products, created.ID)
}

func TestProductDelete_Inexistente_NotFound(t *testing.T) {
	uc, _, _ := newProductFixture()
	assert.ErrorIs(t, uc.Delete("prod-fantasma"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListLowStock — alertas de reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestListLowStock_SoloProductosEnUmbral(t *testing.T) {
	uc, _, moveRepo := newProductFixture()

	low, err := uc.Create(dto.CreateProductRequest{Name: "Tornillo M8", SKU: "TOR-M8", MinReorderLevel: 50})
	require.NoError(t, err)
	ok, err := uc.Create(dto.CreateProductRequest{Name: "Pintura 1gal", SKU: "PIN-B1G", MinReorderLevel: 5})
	require.NoError(t, err)

	moveRepo.balances[low.ID] = inventory.Balance{Incoming: 40}  // 40 <= 50: alerta
	moveRepo.balances[ok.ID] = inventory.Balance{Incoming: 100}  // 100 > 5: sin alerta

	out, err := uc.ListLowStock(20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "TOR-M8", out.Items[0].SKU)
}
