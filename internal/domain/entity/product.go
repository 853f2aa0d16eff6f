package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product datos maestros de un artículo. El stock actual NO se guarda aquí:
// se deriva del libro de movimientos en cada consulta para evitar
// contadores desincronizados.
type Product struct {
	ID              string
	Name            string
	SKU             string // identificador externo, único
	Category        string
	UOM             string // unidad de medida (kg, pcs, Units)
	Cost            decimal.Decimal
	MinReorderLevel int64 // umbral para alertas de stock bajo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
