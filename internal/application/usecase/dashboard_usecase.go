package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// Umbral de bajo stock del tablero.
const lowStockThreshold = 5

// salesDropRatio: hay alerta si las ventas de las últimas 24h caen por debajo
// del 70% de las 24h anteriores (caída > 30%).
var salesDropRatio = decimal.NewFromFloat(0.7)

// LowStockEvaluator hito no_low_stock, evaluado donde se calcula el conteo.
type LowStockEvaluator interface {
	EvaluateNoLowStock(accountID string, lowStockCount int) error
}

// DashboardUseCase agregados de solo lectura para el tablero y /api/stats.
type DashboardUseCase struct {
	productRepo     repository.ProductRepository
	salesRepo       repository.SalesOrderRepository
	purchaseRepo    repository.PurchaseOrderRepository
	achievementRepo repository.AchievementRepository
	statsRepo       repository.StatsRepository
	evaluator       LowStockEvaluator
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	salesRepo repository.SalesOrderRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	achievementRepo repository.AchievementRepository,
	statsRepo repository.StatsRepository,
	evaluator LowStockEvaluator,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:     productRepo,
		salesRepo:       salesRepo,
		purchaseRepo:    purchaseRepo,
		achievementRepo: achievementRepo,
		statsRepo:       statsRepo,
		evaluator:       evaluator,
	}
}

// salesDrop calcula el indicador de caída: true si hubo ventas en las 24h
// previas y las actuales quedaron bajo el 70% de aquellas.
func salesDrop(current, previous decimal.Decimal) bool {
	return previous.GreaterThan(decimal.Zero) && current.LessThan(previous.Mul(salesDropRatio))
}

// Stats devuelve los agregados de /api/stats.
func (uc *DashboardUseCase) Stats(ctx context.Context, accountID string) (*dto.StatsResponse, error) {
	now := time.Now()
	day := 24 * time.Hour

	salesToday, err := uc.statsRepo.SalesTotalBetween(ctx, accountID, now.Add(-day), now)
	if err != nil {
		return nil, err
	}
	prevSales, err := uc.statsRepo.SalesTotalBetween(ctx, accountID, now.Add(-2*day), now.Add(-day))
	if err != nil {
		return nil, err
	}
	purchasesToday, err := uc.statsRepo.PurchasesTotalSince(ctx, accountID, now.Add(-day))
	if err != nil {
		return nil, err
	}
	lowCount, err := uc.productRepo.CountLowStock(accountID, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	productCount, err := uc.productRepo.CountByAccount(accountID)
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		SalesToday:     salesToday,
		PurchasesToday: purchasesToday,
		LowStockCount:  lowCount,
		ProductCount:   productCount,
		SalesDrop:      salesDrop(salesToday, prevSales),
	}, nil
}

// Dashboard arma la vista del tablero: bajo stock, órdenes recientes, alertas
// y logros.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, accountID string) (*dto.DashboardResponse, error) {
	lowStock, err := uc.productRepo.ListLowStock(accountID, lowStockThreshold, 10)
	if err != nil {
		return nil, err
	}
	recentSales, err := uc.salesRepo.ListRecent(accountID, 10)
	if err != nil {
		return nil, err
	}
	recentPurchases, err := uc.purchaseRepo.ListRecent(accountID, 10)
	if err != nil {
		return nil, err
	}
	productCount, err := uc.productRepo.CountByAccount(accountID)
	if err != nil {
		return nil, err
	}
	lowCount, err := uc.productRepo.CountLowStock(accountID, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	// Hito no_low_stock: best-effort, nunca falla la vista.
	_ = uc.evaluator.EvaluateNoLowStock(accountID, lowCount)
	badges, err := uc.achievementRepo.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	day := 24 * time.Hour
	salesToday, err := uc.statsRepo.SalesTotalBetween(ctx, accountID, now.Add(-day), now)
	if err != nil {
		return nil, err
	}
	prevSales, err := uc.statsRepo.SalesTotalBetween(ctx, accountID, now.Add(-2*day), now.Add(-day))
	if err != nil {
		return nil, err
	}

	var alerts []string
	if lowCount > 0 {
		alerts = append(alerts, fmt.Sprintf("%d products are low on stock", lowCount))
	}
	if salesDrop(salesToday, prevSales) {
		alerts = append(alerts, "Sales have dropped compared to yesterday")
	}

	resp := &dto.DashboardResponse{
		LowStock:     toProductResponses(lowStock),
		ProductCount: productCount,
		Alerts:       alerts,
	}
	for _, o := range recentSales {
		resp.RecentSales = append(resp.RecentSales, salesOrderSummary(o))
	}
	for _, o := range recentPurchases {
		resp.RecentPurchases = append(resp.RecentPurchases, purchaseOrderSummary(o))
	}
	for _, b := range badges {
		resp.Badges = append(resp.Badges, dto.AchievementResponse{Key: b.Key, Title: b.Title, UnlockedAt: b.UnlockedAt})
	}
	return resp, nil
}

func salesOrderSummary(o *entity.SalesOrder) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        o.ID,
		PartyID:   o.CustomerID,
		PartyName: o.CustomerName,
		Date:      o.Date,
		Status:    o.Status,
		Total:     o.Total,
	}
}

func purchaseOrderSummary(o *entity.PurchaseOrder) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        o.ID,
		PartyID:   o.SupplierID,
		PartyName: o.SupplierName,
		Date:      o.Date,
		Status:    o.Status,
		Total:     o.Total,
	}
}
