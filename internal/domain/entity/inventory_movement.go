package entity

import "time"

// Razones de movimiento de inventario.
const (
	MovementReasonSale     = "sale"
	MovementReasonPurchase = "purchase"
	MovementReasonAdjust   = "adjust"
)

// InventoryMovement es una fila del libro de movimientos: un delta de stock
// con su razón y referencia (ej. id de la orden). Append-only; nunca se
// actualiza ni borra salvo por eliminación en cascada de la cuenta.
type InventoryMovement struct {
	ID        string
	AccountID string
	ProductID string
	Change    int // delta con signo; nunca cero
	Reason    string
	Reference string
	CreatedAt time.Time
}
