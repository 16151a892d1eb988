package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `o.id, o.account_id, o.supplier_id, COALESCE(su.name, ''), o.date, o.status, o.total`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera de la orden.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, account_id, supplier_id, date, status, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.AccountID, order.SupplierID, order.Date, order.Status, order.Total,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID dentro de la cuenta.
func (r *PurchaseOrderRepo) GetByID(accountID, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders o JOIN suppliers su ON su.id = o.supplier_id
		WHERE o.id = $1 AND o.account_id = $2`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id, accountID).Scan(
		&o.ID, &o.AccountID, &o.SupplierID, &o.SupplierName, &o.Date, &o.Status, &o.Total,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// ListItems lista las líneas de una orden, verificando pertenencia a la cuenta.
func (r *PurchaseOrderRepo) ListItems(accountID, orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_cost
		FROM purchase_order_items i
		JOIN purchase_orders o ON o.id = i.order_id
		WHERE i.order_id = $1 AND o.account_id = $2
		ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, orderID, accountID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista órdenes no finalizadas, las más recientes primero; query filtra
// por nombre de proveedor (case-insensitive).
func (r *PurchaseOrderRepo) List(accountID, query string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	sql := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders o JOIN suppliers su ON su.id = o.supplier_id
		WHERE o.account_id = $1 AND o.status <> 'finished'
		  AND ($2 = '' OR su.name ILIKE $3)
		ORDER BY o.date DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), sql, accountID, query, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListRecent lista las órdenes más recientes sin filtrar por estado.
func (r *PurchaseOrderRepo) ListRecent(accountID string, limit int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders o JOIN suppliers su ON su.id = o.supplier_id
		WHERE o.account_id = $1
		ORDER BY o.date DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent purchase orders: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(accountID, id, status string) error {
	query := `UPDATE purchase_orders SET status = $1 WHERE id = $2 AND account_id = $3`
	tag, err := r.q.Exec(context.Background(), query, status, id, accountID)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByAccount cuenta todas las órdenes de compra de la cuenta.
func (r *PurchaseOrderRepo) CountByAccount(accountID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE account_id = $1`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders: %w", err)
	}
	return n, nil
}

func (r *PurchaseOrderRepo) scanMany(rows pgx.Rows) ([]*entity.PurchaseOrder, error) {
	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.AccountID, &o.SupplierID, &o.SupplierName, &o.Date, &o.Status, &o.Total); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
