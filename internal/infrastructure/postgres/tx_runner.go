package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/invoteam/invo-api/internal/application/inventory"
	"github.com/invoteam/invo-api/internal/application/orders"
	"github.com/invoteam/invo-api/internal/application/usecase"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción de PostgreSQL,
// entregando repositorios atados a la misma transacción. El commit solo ocurre
// si la función termina sin error; cualquier error provoca rollback completo.
type TxRunner struct {
	pool *pgxpool.Pool
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)
var _ usecase.AccountPurger = (*TxRunner)(nil)

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con repositorios de movimientos y productos transaccionales.
func (r *TxRunner) Run(ctx context.Context, fn func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewInventoryMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunSales añade el repositorio de órdenes de venta a la transacción.
func (r *TxRunner) RunSales(ctx context.Context, fn func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository, orderRepo repository.SalesOrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewInventoryMovementRepository(tx), NewProductRepository(tx), NewSalesOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ResetParties elimina clientes y proveedores de la cuenta en una sola
// transacción.
func (r *TxRunner) ResetParties(ctx context.Context, accountID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"customers", "suppliers"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE account_id = $1", accountID); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// PurgeAccount elimina la cuenta y todos sus datos en una sola transacción.
// Las claves de licencia no se tocan: una clave canjeada por una cuenta
// eliminada simplemente no vuelve a otorgar acceso.
func (r *TxRunner) PurgeAccount(ctx context.Context, accountID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM inventory_movements WHERE account_id = $1`,
		`DELETE FROM sales_order_items WHERE order_id IN (SELECT id FROM sales_orders WHERE account_id = $1)`,
		`DELETE FROM sales_orders WHERE account_id = $1`,
		`DELETE FROM purchase_order_items WHERE order_id IN (SELECT id FROM purchase_orders WHERE account_id = $1)`,
		`DELETE FROM purchase_orders WHERE account_id = $1`,
		`DELETE FROM products WHERE account_id = $1`,
		`DELETE FROM categories WHERE account_id = $1`,
		`DELETE FROM customers WHERE account_id = $1`,
		`DELETE FROM suppliers WHERE account_id = $1`,
		`DELETE FROM achievements WHERE account_id = $1`,
		`DELETE FROM accounts WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, accountID); err != nil {
			return fmt.Errorf("purge account: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunPurchases añade el repositorio de órdenes de compra a la transacción.
func (r *TxRunner) RunPurchases(ctx context.Context, fn func(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository, orderRepo repository.PurchaseOrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewInventoryMovementRepository(tx), NewProductRepository(tx), NewPurchaseOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
