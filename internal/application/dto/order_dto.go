package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderLine línea de venta: el precio unitario se toma del producto, no
// del caller.
type SalesOrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateSalesOrderRequest entrada para crear una orden de venta.
type CreateSalesOrderRequest struct {
	CustomerID string           `json:"customer_id"`
	Lines      []SalesOrderLine `json:"lines"`
}

// PurchaseOrderLine línea de compra: el costo unitario lo suministra el caller.
type PurchaseOrderLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
type CreatePurchaseOrderRequest struct {
	SupplierID string              `json:"supplier_id"`
	Lines      []PurchaseOrderLine `json:"lines"`
}

// OrderItemResponse línea persistida de una orden.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitValue decimal.Decimal `json:"unit_value"`
}

// OrderResponse salida de una orden de venta o compra.
type OrderResponse struct {
	ID        string              `json:"id"`
	PartyID   string              `json:"party_id"`
	PartyName string              `json:"party_name,omitempty"`
	Date      time.Time           `json:"date"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	Items     []OrderItemResponse `json:"items,omitempty"`
}
