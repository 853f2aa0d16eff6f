package entity

import "time"

// Warehouse representa una bodega física. ShortCode se usa en las referencias
// de movimiento (ej. WH1 en WH1/IN/0001) y es único, igual que Name.
type Warehouse struct {
	ID        string
	Name      string
	ShortCode string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
