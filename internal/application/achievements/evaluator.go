package achievements

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// Umbral de bajo stock compartido con el dashboard.
const LowStockThreshold = 5

// badge define un umbral de logro sobre un conteo.
type badge struct {
	key       string
	title     string
	threshold int
}

var salesBadges = []badge{
	{entity.AchievementFirstSale, "First Sale", 1},
	{entity.AchievementTenSales, "10 Sales", 10},
	{entity.AchievementFiftySales, "50 Sales", 50},
}

var purchaseBadges = []badge{
	{entity.AchievementFirstPurchase, "First Purchase", 1},
	{entity.AchievementTenPurchases, "10 Purchases", 10},
}

// Evaluator recalcula los agregados de la cuenta tras cada evento y
// desbloquea los logros cuyo umbral se alcanzó. El desbloqueo es idempotente:
// a lo sumo una fila por (cuenta, clave), reinsertar es un no-op.
type Evaluator struct {
	achievementRepo repository.AchievementRepository
	salesRepo       repository.SalesOrderRepository
	purchaseRepo    repository.PurchaseOrderRepository
	productRepo     repository.ProductRepository
}

// NewEvaluator construye el evaluador.
func NewEvaluator(
	achievementRepo repository.AchievementRepository,
	salesRepo repository.SalesOrderRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
) *Evaluator {
	return &Evaluator{
		achievementRepo: achievementRepo,
		salesRepo:       salesRepo,
		purchaseRepo:    purchaseRepo,
		productRepo:     productRepo,
	}
}

func (e *Evaluator) unlock(accountID, key, title string) error {
	_, err := e.achievementRepo.Unlock(&entity.Achievement{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Key:        key,
		Title:      title,
		UnlockedAt: time.Now(),
	})
	return err
}

func (e *Evaluator) unlockReached(accountID string, count int, badges []badge) error {
	for _, b := range badges {
		if count >= b.threshold {
			if err := e.unlock(accountID, b.key, b.title); err != nil {
				return err
			}
		}
	}
	return nil
}

// EvaluateAfterSale recalcula el total de órdenes de venta de la cuenta y
// desbloquea los hitos de venta alcanzados.
func (e *Evaluator) EvaluateAfterSale(accountID string) error {
	count, err := e.salesRepo.CountByAccount(accountID)
	if err != nil {
		return err
	}
	return e.unlockReached(accountID, count, salesBadges)
}

// EvaluateAfterPurchase recalcula el total de órdenes de compra y desbloquea
// los hitos de compra alcanzados.
func (e *Evaluator) EvaluateAfterPurchase(accountID string) error {
	count, err := e.purchaseRepo.CountByAccount(accountID)
	if err != nil {
		return err
	}
	return e.unlockReached(accountID, count, purchaseBadges)
}

// EvaluateAfterProductCreate desbloquea inventory_100 al llegar a 100 productos.
func (e *Evaluator) EvaluateAfterProductCreate(accountID string) error {
	count, err := e.productRepo.CountByAccount(accountID)
	if err != nil {
		return err
	}
	if count >= 100 {
		return e.unlock(accountID, entity.AchievementInventory100, "Inventory 100 Items")
	}
	return nil
}

// EvaluateNoLowStock desbloquea no_low_stock cuando no hay productos con
// stock bajo el umbral.
func (e *Evaluator) EvaluateNoLowStock(accountID string, lowStockCount int) error {
	if lowStockCount == 0 {
		return e.unlock(accountID, entity.AchievementNoLowStock, "No Low Stock")
	}
	return nil
}

// List devuelve los logros de la cuenta, más reciente primero.
func (e *Evaluator) List(accountID string) ([]dto.AchievementResponse, error) {
	list, err := e.achievementRepo.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AchievementResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AchievementResponse{Key: a.Key, Title: a.Title, UnlockedAt: a.UnlockedAt})
	}
	return out, nil
}
