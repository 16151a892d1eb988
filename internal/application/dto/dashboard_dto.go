package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsResponse agregados de /api/stats: totales de las últimas 24h, conteos
// y el indicador de caída de ventas (>30% vs las 24h anteriores).
type StatsResponse struct {
	SalesToday     decimal.Decimal `json:"sales_today"`
	PurchasesToday decimal.Decimal `json:"purchases_today"`
	LowStockCount  int             `json:"low_stock_count"`
	ProductCount   int             `json:"product_count"`
	SalesDrop      bool            `json:"sales_drop"`
}

// AchievementResponse logro desbloqueado.
type AchievementResponse struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// DashboardResponse datos del tablero: productos con bajo stock, órdenes
// recientes, alertas y logros.
type DashboardResponse struct {
	LowStock        []ProductResponse     `json:"low_stock"`
	RecentSales     []OrderResponse       `json:"recent_sales"`
	RecentPurchases []OrderResponse       `json:"recent_purchases"`
	ProductCount    int                   `json:"product_count"`
	Alerts          []string              `json:"alerts"`
	Badges          []AchievementResponse `json:"badges"`
}
