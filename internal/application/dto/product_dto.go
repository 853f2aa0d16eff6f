package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Category        string          `json:"category"`
	UOM             string          `json:"uom"`
	Cost            decimal.Decimal `json:"cost"`
	MinReorderLevel int64           `json:"min_reorder_level"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	SKU             *string          `json:"sku"`
	Category        *string          `json:"category"`
	UOM             *string          `json:"uom"`
	Cost            *decimal.Decimal `json:"cost"`
	MinReorderLevel *int64           `json:"min_reorder_level"`
}

// ProductResponse producto con sus cantidades derivadas del libro de
// movimientos; se recalculan en cada consulta, nunca se almacenan.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Category        string          `json:"category,omitempty"`
	UOM             string          `json:"uom"`
	Cost            decimal.Decimal `json:"cost"`
	MinReorderLevel int64           `json:"min_reorder_level"`
	OnHand          int64           `json:"on_hand"`
	Reserved        int64           `json:"reserved"`
	FreeToUse       int64           `json:"free_to_use"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
