package orders

import (
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
)

// ListSalesOrders lista órdenes de venta no finalizadas; query filtra por
// nombre de cliente.
func (e *Engine) ListSalesOrders(accountID, query string, limit, offset int) ([]dto.OrderResponse, error) {
	list, err := e.salesRepo.List(accountID, query, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toSalesOrderResponse(o, nil))
	}
	return out, nil
}

// ListPurchaseOrders lista órdenes de compra no finalizadas; query filtra por
// nombre de proveedor.
func (e *Engine) ListPurchaseOrders(accountID, query string, limit, offset int) ([]dto.OrderResponse, error) {
	list, err := e.purchaseRepo.List(accountID, query, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toPurchaseOrderResponse(o, nil))
	}
	return out, nil
}

// GetSalesOrder devuelve una orden de venta con sus líneas.
func (e *Engine) GetSalesOrder(accountID, orderID string) (*dto.OrderResponse, error) {
	order, err := e.salesRepo.GetByID(accountID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := e.salesRepo.ListItems(accountID, orderID)
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(order, items), nil
}

// GetPurchaseOrder devuelve una orden de compra con sus líneas.
func (e *Engine) GetPurchaseOrder(accountID, orderID string) (*dto.OrderResponse, error) {
	order, err := e.purchaseRepo.GetByID(accountID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := e.purchaseRepo.ListItems(accountID, orderID)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, items), nil
}
