package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de agregación para el dashboard. Solo lectura.
type StatsRepo struct {
	q Querier
}

func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// SalesTotalBetween suma los totales de órdenes de venta en [from, to).
func (r *StatsRepo) SalesTotalBetween(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM sales_orders
		WHERE account_id = $1 AND date >= $2 AND date < $3`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, accountID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}

// PurchasesTotalSince suma los totales de órdenes de compra desde `since`.
func (r *StatsRepo) PurchasesTotalSince(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM purchase_orders
		WHERE account_id = $1 AND date >= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, accountID, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum purchases: %w", err)
	}
	return total, nil
}
