package orders

import (
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
)

// FinishSalesOrder marca la orden como finalizada. Ya finalizada se acepta en
// silencio; no tiene efectos sobre el stock.
func (e *Engine) FinishSalesOrder(accountID, orderID string) error {
	order, err := e.salesRepo.GetByID(accountID, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusFinished {
		return nil
	}
	return e.salesRepo.UpdateStatus(accountID, orderID, entity.OrderStatusFinished)
}

// FinishPurchaseOrder simétrico para órdenes de compra.
func (e *Engine) FinishPurchaseOrder(accountID, orderID string) error {
	order, err := e.purchaseRepo.GetByID(accountID, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusFinished {
		return nil
	}
	return e.purchaseRepo.UpdateStatus(accountID, orderID, entity.OrderStatusFinished)
}
