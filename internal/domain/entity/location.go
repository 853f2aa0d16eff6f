package entity

import "time"

// Tipos de ubicación. Los tipos vendor, customer e inventory_loss son
// virtuales: no pertenecen a una bodega, son fronteras del libro mayor.
const (
	LocationTypeInternal      = "internal"       // bodega física, rack, estante
	LocationTypeCustomer      = "customer"       // salida de mercancía a clientes
	LocationTypeVendor        = "vendor"         // entrada de mercancía de proveedores
	LocationTypeInventoryLoss = "inventory_loss" // mercancía perdida o dañada
	LocationTypeProduction    = "production"     // piso de manufactura
)

// ValidLocationType indica si t es un tipo de ubicación conocido.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeInternal, LocationTypeCustomer, LocationTypeVendor,
		LocationTypeInventoryLoss, LocationTypeProduction:
		return true
	}
	return false
}

// Location representa una ubicación de stock. El stock de un producto en una
// ubicación se deriva sumando movimientos que entran menos los que salen.
type Location struct {
	ID          string
	Name        string
	ShortCode   string
	Type        string
	WarehouseID *string // nil para ubicaciones virtuales
	CreatedAt   time.Time
}
