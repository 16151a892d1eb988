package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. El SKU es único por cuenta
// (constraint compuesto account_id+sku). Stock es un entero que solo se
// modifica vía el motor de inventario; nunca queda negativo bajo la política
// por defecto.
type Product struct {
	ID           string
	AccountID    string
	SKU          string
	Name         string
	CategoryID   *string // nullable; sin categoría = nil
	CategoryName string  // resuelto en lectura (JOIN con categories), no persistido
	Price        decimal.Decimal
	Stock        int
	CreatedAt    time.Time
}
