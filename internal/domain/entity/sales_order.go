package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden. "open" solo existe de forma transitoria durante la
// creación: la orden queda "closed" en la misma transacción que la crea.
const (
	OrderStatusOpen     = "open"
	OrderStatusClosed   = "closed"
	OrderStatusFinished = "finished"
)

// SalesOrder representa una orden de venta con su total calculado.
type SalesOrder struct {
	ID           string
	AccountID    string
	CustomerID   string
	CustomerName string // resuelto en lectura (JOIN con customers), no persistido
	Date         time.Time
	Status       string
	Total        decimal.Decimal
}

// SalesOrderItem línea de una orden de venta. UnitPrice es el precio del
// producto capturado al momento de la venta (snapshot, no referencia viva).
type SalesOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}
