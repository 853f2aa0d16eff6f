package dto

import "time"

// CreateLocationRequest alta de ubicación. WarehouseID es obligatorio para
// ubicaciones internas y se omite en las virtuales.
type CreateLocationRequest struct {
	Name        string  `json:"name"`
	ShortCode   string  `json:"short_code"`
	Type        string  `json:"type"`
	WarehouseID *string `json:"warehouse_id"`
}

// UpdateLocationRequest actualización parcial de ubicación.
type UpdateLocationRequest struct {
	Name      *string `json:"name"`
	ShortCode *string `json:"short_code"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ShortCode   string    `json:"short_code"`
	Type        string    `json:"type"`
	WarehouseID *string   `json:"warehouse_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
