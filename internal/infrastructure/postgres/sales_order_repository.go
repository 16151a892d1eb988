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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `o.id, o.account_id, o.customer_id, COALESCE(cu.name, ''), o.date, o.status, o.total`

// SalesOrderRepo implementación del puerto SalesOrderRepository sobre
// PostgreSQL (usable con pool o tx). El nombre del cliente se resuelve por
// JOIN en lectura.
type SalesOrderRepo struct {
	q Querier
}

func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste la cabecera de la orden.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, account_id, customer_id, date, status, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.AccountID, order.CustomerID, order.Date, order.Status, order.Total,
	)
	if err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden.
func (r *SalesOrderRepo) CreateItem(item *entity.SalesOrderItem) error {
	query := `
		INSERT INTO sales_order_items (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sales order item: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID dentro de la cuenta.
func (r *SalesOrderRepo) GetByID(accountID, id string) (*entity.SalesOrder, error) {
	query := `
		SELECT ` + salesOrderColumns + `
		FROM sales_orders o JOIN customers cu ON cu.id = o.customer_id
		WHERE o.id = $1 AND o.account_id = $2`
	var o entity.SalesOrder
	err := r.q.QueryRow(context.Background(), query, id, accountID).Scan(
		&o.ID, &o.AccountID, &o.CustomerID, &o.CustomerName, &o.Date, &o.Status, &o.Total,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return &o, nil
}

// ListItems lista las líneas de una orden, verificando pertenencia a la cuenta.
func (r *SalesOrderRepo) ListItems(accountID, orderID string) ([]*entity.SalesOrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price
		FROM sales_order_items i
		JOIN sales_orders o ON o.id = i.order_id
		WHERE i.order_id = $1 AND o.account_id = $2
		ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, orderID, accountID)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SalesOrderItem
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista órdenes no finalizadas, las más recientes primero; query filtra
// por nombre de cliente (case-insensitive).
func (r *SalesOrderRepo) List(accountID, query string, limit, offset int) ([]*entity.SalesOrder, error) {
	sql := `
		SELECT ` + salesOrderColumns + `
		FROM sales_orders o JOIN customers cu ON cu.id = o.customer_id
		WHERE o.account_id = $1 AND o.status <> 'finished'
		  AND ($2 = '' OR cu.name ILIKE $3)
		ORDER BY o.date DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), sql, accountID, query, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListRecent lista las órdenes más recientes sin filtrar por estado.
func (r *SalesOrderRepo) ListRecent(accountID string, limit int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT ` + salesOrderColumns + `
		FROM sales_orders o JOIN customers cu ON cu.id = o.customer_id
		WHERE o.account_id = $1
		ORDER BY o.date DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales orders: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// UpdateStatus cambia el estado de la orden.
func (r *SalesOrderRepo) UpdateStatus(accountID, id, status string) error {
	query := `UPDATE sales_orders SET status = $1 WHERE id = $2 AND account_id = $3`
	tag, err := r.q.Exec(context.Background(), query, status, id, accountID)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByAccount cuenta todas las órdenes de venta de la cuenta.
func (r *SalesOrderRepo) CountByAccount(accountID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales_orders WHERE account_id = $1`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return n, nil
}

func (r *SalesOrderRepo) scanMany(rows pgx.Rows) ([]*entity.SalesOrder, error) {
	var orders []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.AccountID, &o.CustomerID, &o.CustomerName, &o.Date, &o.Status, &o.Total); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
