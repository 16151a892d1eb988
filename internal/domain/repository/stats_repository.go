package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatsRepository consultas de solo lectura para el dashboard y /api/stats.
type StatsRepository interface {
	// SalesTotalBetween suma los totales de órdenes de venta en [from, to).
	SalesTotalBetween(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)
	// PurchasesTotalSince suma los totales de órdenes de compra desde `since`.
	PurchasesTotalSince(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error)
}
