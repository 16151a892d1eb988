package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del puerto InventoryMovementRepository
// sobre PostgreSQL (usable con pool o tx). El libro es append-only: no hay
// UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta una fila del libro de movimientos.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, account_id, product_id, change, reason, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.AccountID, movement.ProductID,
		movement.Change, movement.Reason, movement.Reference, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, los más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(accountID, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, account_id, product_id, change, reason, reference, created_at
		FROM inventory_movements
		WHERE account_id = $1 AND product_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, accountID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByAccount lista todos los movimientos de la cuenta, los más recientes primero.
func (r *InventoryMovementRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, account_id, product_id, change, reason, reference, created_at
		FROM inventory_movements
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *InventoryMovementRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	var movements []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.AccountID, &m.ProductID, &m.Change, &m.Reason, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
