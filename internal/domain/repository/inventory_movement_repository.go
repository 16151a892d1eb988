package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia del libro de
// movimientos. Solo inserta y lista: las filas son inmutables.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(accountID, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByAccount(accountID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
