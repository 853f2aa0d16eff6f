package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

// MoveWithDetails fila del libro mayor con producto y ubicaciones resueltos,
// para listados e historial.
type MoveWithDetails struct {
	Move        entity.StockMove
	Product     entity.Product
	Source      entity.Location
	Destination entity.Location
}

// StockMoveRepository puerto de persistencia para el libro de movimientos.
// La columna reference lleva un índice único: el insert falla con 23505 si dos
// creaciones concurrentes calculan la misma secuencia.
type StockMoveRepository interface {
	Create(move *entity.StockMove) error
	GetByID(id string) (*entity.StockMove, error)
	// UpdateStatus solo toca status y updated_at; el resto del movimiento es inmutable.
	UpdateStatus(id, status string, updatedAt time.Time) error
	// CountByOperation cuenta movimientos cuya referencia contiene "{opCode}/".
	CountByOperation(opCode string) (int64, error)
	// CountByProduct cuenta movimientos que referencian al producto (guard de borrado).
	CountByProduct(productID string) (int64, error)
	// Balances deriva las sumas del libro para un producto; cero si no hay filas.
	Balances(productID string) (inventory.Balance, error)
	// List historial completo, más reciente primero. search busca en referencia,
	// nombre de producto y nombre de ubicación origen ("" = sin filtro).
	List(search string, limit, offset int) ([]*MoveWithDetails, error)
	// ListBySourceType movimientos cuyo origen es del tipo dado (recepciones: vendor).
	ListBySourceType(locationType, search string, limit, offset int) ([]*MoveWithDetails, error)
	// ListByDestinationType movimientos cuyo destino es del tipo dado (entregas: customer).
	ListByDestinationType(locationType, search string, limit, offset int) ([]*MoveWithDetails, error)
}
