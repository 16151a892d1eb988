package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// CreatePurchaseOrder es el simétrico de venta: suma stock (razón "purchase")
// con el costo unitario suministrado por el caller, y acumula el total como
// quantity*unit_cost. Post-commit dispara los logros de compra.
func (e *Engine) CreatePurchaseOrder(ctx context.Context, accountID string, in dto.CreatePurchaseOrderRequest) (*dto.OrderResponse, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity <= 0 || line.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := e.supplierRepo.GetByID(accountID, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderID := uuid.New().String()
	order := &entity.PurchaseOrder{
		ID:           orderID,
		AccountID:    accountID,
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Date:         now,
		Status:       entity.OrderStatusOpen,
	}
	var items []*entity.PurchaseOrderItem

	err = e.txRunner.RunPurchases(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		total := decimal.Zero
		items = items[:0]
		for _, line := range in.Lines {
			product, err := productRepo.GetForUpdate(accountID, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if _, err := e.stock.ApplyDeltaInTx(
				movRepo, productRepo, product,
				line.Quantity,
				entity.MovementReasonPurchase, orderID, now,
			); err != nil {
				return err
			}
			items = append(items, &entity.PurchaseOrderItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitCost:  line.UnitCost,
			})
			total = total.Add(line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order.Total = total
		order.Status = entity.OrderStatusClosed
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.evaluator.EvaluateAfterPurchase(accountID); err != nil {
		e.log.Warn().Err(err).Str("account_id", accountID).Msg("evaluación de logros de compra")
	}
	return toPurchaseOrderResponse(order, items), nil
}
