package dto

import "time"

// AdjustStockRequest entrada para un ajuste manual de stock.
type AdjustStockRequest struct {
	Delta     int    `json:"delta"`
	Reference string `json:"reference"`
}

// AdjustStockResponse salida de un ajuste: cantidad resultante y delta
// efectivamente aplicado (puede ser menor al pedido por el clamp en cero).
type AdjustStockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
	Applied   int    `json:"applied"`
}

// MovementResponse fila del libro de movimientos.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Change    int       `json:"change"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
