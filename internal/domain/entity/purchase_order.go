package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder representa una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID           string
	AccountID    string
	SupplierID   string
	SupplierName string // resuelto en lectura (JOIN con suppliers), no persistido
	Date         time.Time
	Status       string
	Total        decimal.Decimal
}

// PurchaseOrderItem línea de una orden de compra. UnitCost lo suministra el
// caller (no se toma del producto).
type PurchaseOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
}
