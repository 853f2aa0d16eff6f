package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// LocationRepository puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	// List filtra por bodega si warehouseID no es ""; lista todas si es "".
	List(warehouseID string, limit, offset int) ([]*entity.Location, error)
}
