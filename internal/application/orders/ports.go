package orders

import (
	"context"
	"time"

	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El motor de órdenes es el dueño de la
// frontera transaccional: cabecera, líneas, deltas de stock y filas del libro
// de movimientos se confirman o descartan como una unidad.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.SalesOrderRepository,
	) error) error

	RunPurchases(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// StockWriter aplica deltas de stock dentro de la transacción del motor
// (implementado por inventory.StockService). No hace commits propios.
type StockWriter interface {
	ApplyDeltaInTx(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		product *entity.Product,
		delta int,
		reason, reference string,
		now time.Time,
	) (int, error)
}

// Evaluator desbloquea logros tras una orden confirmada. Se invoca post-commit
// y es best-effort: sus errores se registran y nunca revierten la orden.
type Evaluator interface {
	EvaluateAfterSale(accountID string) error
	EvaluateAfterPurchase(accountID string) error
}
