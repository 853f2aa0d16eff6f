package dto

import "time"

// CreateMoveRequest alta de movimiento de stock. Reference la genera el
// backend; Status por defecto es draft.
type CreateMoveRequest struct {
	ProductID             string `json:"product_id"`
	Quantity              int64  `json:"quantity"`
	SourceLocationID      string `json:"source_location_id"`
	DestinationLocationID string `json:"destination_location_id"`
	Status                string `json:"status"`
}

// SetMoveStatusRequest cambio de estado de un movimiento existente.
type SetMoveStatusRequest struct {
	Status string `json:"status"`
}

// MoveProduct resumen del producto dentro de un movimiento.
type MoveProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
	UOM  string `json:"uom"`
}

// MoveResponse movimiento con producto y ubicaciones resueltos.
type MoveResponse struct {
	ID                  string           `json:"id"`
	Reference           string           `json:"reference"`
	Quantity            int64            `json:"quantity"`
	Status              string           `json:"status"`
	Product             MoveProduct      `json:"product"`
	SourceLocation      LocationResponse `json:"source_location"`
	DestinationLocation LocationResponse `json:"destination_location"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// MoveListResponse listado paginado de movimientos.
type MoveListResponse struct {
	Items []MoveResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
