package inventory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appinv "github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeMoveRepo struct {
	moves []*entity.StockMove
	// failCreates fuerza N fallos de unicidad consecutivos en Create, para
	// simular colisiones de referencia entre creaciones concurrentes.
	failCreates int
}

func (r *fakeMoveRepo) Create(move *entity.StockMove) error {
	if r.failCreates > 0 {
		r.failCreates--
		return domain.ErrDuplicate
	}
	for _, m := range r.moves {
		if m.Reference == move.Reference {
			return domain.ErrDuplicate
		}
	}
	cp := *move
	r.moves = append(r.moves, &cp)
	return nil
}

func (r *fakeMoveRepo) GetByID(id string) (*entity.StockMove, error) {
	for _, m := range r.moves {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMoveRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	for _, m := range r.moves {
		if m.ID == id {
			m.Status = status
			m.UpdatedAt = updatedAt
		}
	}
	return nil
}

func (r *fakeMoveRepo) CountByOperation(opCode string) (int64, error) {
	var n int64
	for _, m := range r.moves {
		if strings.Contains(m.Reference, opCode+"/") {
			n++
		}
	}
	return n, nil
}

func (r *fakeMoveRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	for _, m := range r.moves {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMoveRepo) Balances(productID string) (inventory.Balance, error) {
	return inventory.Balance{}, nil
}

func (r *fakeMoveRepo) List(search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return nil, nil
}

func (r *fakeMoveRepo) ListBySourceType(locationType, search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return nil, nil
}

func (r *fakeMoveRepo) ListByDestinationType(locationType, search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return nil, nil
}

// fakeTxRunner ejecuta el callback directamente con el repo en memoria.
type fakeTxRunner struct {
	moves *fakeMoveRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(moves repository.StockMoveRepository) error) error {
	return fn(r.moves)
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error               { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)  { return r.products[id], nil }
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error              { return nil }
func (r *fakeProductRepo) Delete(id string) error                      { return nil }
func (r *fakeProductRepo) List(search, category string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (r *fakeLocationRepo) Create(l *entity.Location) error              { r.locations[l.ID] = l; return nil }
func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) { return r.locations[id], nil }
func (r *fakeLocationRepo) Update(l *entity.Location) error             { return nil }
func (r *fakeLocationRepo) List(warehouseID string, limit, offset int) ([]*entity.Location, error) {
	return nil, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error              { r.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) { return r.warehouses[id], nil }
func (r *fakeWarehouseRepo) GetByShortCode(code string) (*entity.Warehouse, error) {
	return nil, nil
}
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { return nil }
func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

// fixture arma el caso de uso con una bodega WH1 (stock interno), un producto
// y las ubicaciones virtuales de proveedor y cliente.
type fixture struct {
	uc        *appinv.MoveUseCase
	moves     *fakeMoveRepo
	productID string
	stockID   string // internal, WH1
	vendorID  string
	custID    string
}

func newFixture() *fixture {
	moves := &fakeMoveRepo{}
	whID := "wh-1"
	warehouses := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		whID: {ID: whID, Name: "Bodega Principal", ShortCode: "WH1"},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Tornillo M8", SKU: "TOR-M8", UOM: "Units"},
	}}
	locations := &fakeLocationRepo{locations: map[string]*entity.Location{
		"loc-stock":  {ID: "loc-stock", Name: "Stock", Type: entity.LocationTypeInternal, WarehouseID: &whID},
		"loc-vendor": {ID: "loc-vendor", Name: "Proveedores", Type: entity.LocationTypeVendor},
		"loc-cust":   {ID: "loc-cust", Name: "Clientes", Type: entity.LocationTypeCustomer},
	}}
	uc := appinv.NewMoveUseCase(&fakeTxRunner{moves: moves}, moves, products, locations, warehouses)
	return &fixture{
		uc:        uc,
		moves:     moves,
		productID: "prod-1",
		stockID:   "loc-stock",
		vendorID:  "loc-vendor",
		custID:    "loc-cust",
	}
}

func (f *fixture) createMove(t *testing.T, sourceID, destID string) *dto.MoveResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), dto.CreateMoveRequest{
		ProductID:             f.productID,
		Quantity:              10,
		SourceLocationID:      sourceID,
		DestinationLocationID: destID,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — clasificación y referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Recepcion_ReferenciaConBodegaDestino(t *testing.T) {
	f := newFixture()
	out := f.createMove(t, f.vendorID, f.stockID)

	assert.Equal(t, "WH1/IN/0001", out.Reference)
	assert.Equal(t, entity.MoveStatusDraft, out.Status, "sin estado explícito arranca en draft")
	assert.Equal(t, "Tornillo M8", out.Product.Name)
}

func TestCreate_Entrega_ReferenciaConBodegaOrigen(t *testing.T) {
	f := newFixture()
	out := f.createMove(t, f.stockID, f.custID)

	assert.Equal(t, "WH1/OUT/0001", out.Reference)
}

func TestCreate_RecepcionesConsecutivas_SecuenciaIncremental(t *testing.T) {
	f := newFixture()
	first := f.createMove(t, f.vendorID, f.stockID)
	second := f.createMove(t, f.vendorID, f.stockID)

	assert.Equal(t, "WH1/IN/0001", first.Reference)
	assert.Equal(t, "WH1/IN/0002", second.Reference)
}

func TestCreate_SecuenciasPorOperacionIndependientes(t *testing.T) {
	f := newFixture()
	f.createMove(t, f.vendorID, f.stockID) // IN/0001
	out := f.createMove(t, f.stockID, f.custID)

	assert.Equal(t, "WH1/OUT/0001", out.Reference, "cada operación lleva su propia secuencia")
}

func TestCreate_ProductoInexistente_NotFoundYNoPersiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateMoveRequest{
		ProductID:             "prod-fantasma",
		Quantity:              10,
		SourceLocationID:      f.vendorID,
		DestinationLocationID: f.stockID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.moves.moves, "nada debe quedar persistido")
}

func TestCreate_UbicacionInexistente_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateMoveRequest{
		ProductID:             f.productID,
		Quantity:              10,
		SourceLocationID:      "loc-fantasma",
		DestinationLocationID: f.stockID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_CantidadNoPositiva_Rechazada(t *testing.T) {
	f := newFixture()
	for _, qty := range []int64{0, -5} {
		_, err := f.uc.Create(context.Background(), dto.CreateMoveRequest{
			ProductID:             f.productID,
			Quantity:              qty,
			SourceLocationID:      f.vendorID,
			DestinationLocationID: f.stockID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreate_OrigenIgualDestino_Rechazado(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateMoveRequest{
		ProductID:             f.productID,
		Quantity:              10,
		SourceLocationID:      f.stockID,
		DestinationLocationID: f.stockID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_EstadoDesconocido_Rechazado(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateMoveRequest{
		ProductID:             f.productID,
		Quantity:              10,
		SourceLocationID:      f.vendorID,
		DestinationLocationID: f.stockID,
		Status:                "archived",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — reintentos ante colisión de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ColisionDeReferencia_Reintenta(t *testing.T) {
	f := newFixture()
	f.moves.failCreates = 2 // dos colisiones simuladas, el tercer intento pasa

	out := f.createMove(t, f.vendorID, f.stockID)
	assert.Equal(t, "WH1/IN/0001", out.Reference)
	assert.Len(t, f.moves.moves, 1)
}

func TestCreate_ColisionPersistente_Conflict(t *testing.T) {
	f := newFixture()
	f.moves.failCreates = 3 // agota los tres intentos

	_, err := f.uc.Create(context.Background(), dto.CreateMoveRequest{
		ProductID:             f.productID,
		Quantity:              10,
		SourceLocationID:      f.vendorID,
		DestinationLocationID: f.stockID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetStatus — máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStatus_DraftADone_Permitido(t *testing.T) {
	f := newFixture()
	created := f.createMove(t, f.vendorID, f.stockID)

	out, err := f.uc.SetStatus(created.ID, entity.MoveStatusDone)
	require.NoError(t, err)
	assert.Equal(t, entity.MoveStatusDone, out.Status)
	assert.Equal(t, created.Reference, out.Reference, "la referencia no cambia con el estado")
}

func TestSetStatus_DoneEsTerminal(t *testing.T) {
	f := newFixture()
	created := f.createMove(t, f.vendorID, f.stockID)
	_, err := f.uc.SetStatus(created.ID, entity.MoveStatusDone)
	require.NoError(t, err)

	_, err = f.uc.SetStatus(created.ID, entity.MoveStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSetStatus_WaitingNoVuelveADraft(t *testing.T) {
	f := newFixture()
	created := f.createMove(t, f.vendorID, f.stockID)
	_, err := f.uc.SetStatus(created.ID, entity.MoveStatusWaiting)
	require.NoError(t, err)

	_, err = f.uc.SetStatus(created.ID, entity.MoveStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSetStatus_MovimientoInexistente_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.uc.SetStatus("move-fantasma", entity.MoveStatusDone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus_EstadoDesconocido_Rechazado(t *testing.T) {
	f := newFixture()
	created := f.createMove(t, f.vendorID, f.stockID)
	_, err := f.uc.SetStatus(created.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
