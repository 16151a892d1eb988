package inventory

import (
	"context"

	"github.com/invoteam/invo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// el ajuste de cantidad y su fila en el libro de movimientos se confirman o
// descartan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
