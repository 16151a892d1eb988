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

// CreateSalesOrder valida las líneas, toma el precio actual de cada producto
// como snapshot, descuenta stock (razón "sale", referencia = id de la orden) y
// persiste cabecera y líneas con el total acumulado. La orden queda "closed"
// en la misma transacción; "open" nunca es observable desde afuera.
// Post-commit dispara la evaluación de logros de venta (best-effort).
func (e *Engine) CreateSalesOrder(ctx context.Context, accountID string, in dto.CreateSalesOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	customer, err := e.customerRepo.GetByID(accountID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderID := uuid.New().String()
	order := &entity.SalesOrder{
		ID:           orderID,
		AccountID:    accountID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Date:         now,
		Status:       entity.OrderStatusOpen,
	}
	var items []*entity.SalesOrderItem

	err = e.txRunner.RunSales(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		total := decimal.Zero
		items = items[:0]
		for _, line := range in.Lines {
			// Bloquea la fila del producto; un id ajeno a la cuenta se comporta
			// como inexistente y aborta la orden completa.
			product, err := productRepo.GetForUpdate(accountID, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			unitPrice := product.Price
			if _, err := e.stock.ApplyDeltaInTx(
				movRepo, productRepo, product,
				-line.Quantity,
				entity.MovementReasonSale, orderID, now,
			); err != nil {
				return err
			}
			items = append(items, &entity.SalesOrderItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
			})
			total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
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

	if err := e.evaluator.EvaluateAfterSale(accountID); err != nil {
		e.log.Warn().Err(err).Str("account_id", accountID).Msg("evaluación de logros de venta")
	}
	return toSalesOrderResponse(order, items), nil
}
