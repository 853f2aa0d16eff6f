package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de movimientos atado a esa tx. Garantiza que el conteo de la
// secuencia y el insert de la referencia sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(moves repository.StockMoveRepository) error) error
}
