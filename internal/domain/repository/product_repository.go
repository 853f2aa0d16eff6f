package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// List filtra por nombre (search, ILIKE) y categoría (igualdad); "" desactiva el filtro.
	List(search, category string, limit, offset int) ([]*entity.Product, error)
}
