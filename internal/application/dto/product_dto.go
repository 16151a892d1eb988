package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock no se
// edita por aquí: se ajusta vía movimientos de inventario.
type UpdateProductRequest struct {
	SKU        *string          `json:"sku"`
	Name       *string          `json:"name"`
	CategoryID *string          `json:"category_id"`
	Price      *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto. Category es el nombre resuelto en
// lectura; vacío significa sin categoría.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductGroup grupo de productos bajo una categoría (listado agrupado).
type ProductGroup struct {
	Category string            `json:"category"`
	Items    []ProductResponse `json:"items"`
}
