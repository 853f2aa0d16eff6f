package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Las cantidades (on_hand,
// reserved, free_to_use) se derivan del libro de movimientos en cada consulta.
type ProductUseCase struct {
	repo     repository.ProductRepository
	moveRepo repository.StockMoveRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, moveRepo repository.StockMoveRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, moveRepo: moveRepo}
}

// Create crea un producto. SKU es único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UOM == "" {
		in.UOM = "Units"
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		SKU:             in.SKU,
		Category:        in.Category,
		UOM:             in.UOM,
		Cost:            in.Cost,
		MinReorderLevel: in.MinReorderLevel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return uc.withBalances(product)
}

// GetByID obtiene un producto por ID, con sus cantidades derivadas.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.withBalances(product)
}

// Update actualiza un producto. Si cambia el SKU se re-verifica unicidad.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		existing, _ := uc.repo.GetBySKU(*in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.UOM != nil {
		product.UOM = *in.UOM
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.MinReorderLevel != nil {
		product.MinReorderLevel = *in.MinReorderLevel
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return uc.withBalances(product)
}

// Delete elimina un producto. Rechaza con ErrConflict si el libro de
// movimientos lo referencia: borrar rompería el historial.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	moves, err := uc.moveRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if moves > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// List lista productos con filtros y las cantidades derivadas por producto.
func (uc *ProductUseCase) List(search, category string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(search, category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		resp, err := uc.withBalances(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock productos cuyo stock físico está en o bajo su umbral de
// reorden (alertas de reposición).
func (uc *ProductUseCase) ListLowStock(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List("", "", limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0)
	for _, p := range list {
		resp, err := uc.withBalances(p)
		if err != nil {
			return nil, err
		}
		if resp.OnHand <= p.MinReorderLevel {
			items = append(items, *resp)
		}
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// withBalances adjunta las cantidades derivadas del libro al producto.
func (uc *ProductUseCase) withBalances(p *entity.Product) (*dto.ProductResponse, error) {
	balance, err := uc.moveRepo.Balances(p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		Category:        p.Category,
		UOM:             p.UOM,
		Cost:            p.Cost,
		MinReorderLevel: p.MinReorderLevel,
		OnHand:          balance.OnHand(),
		Reserved:        balance.Reserved,
		FreeToUse:       balance.FreeToUse(),
		CreatedAt:       p.CreatedAt,
	}, nil
}
