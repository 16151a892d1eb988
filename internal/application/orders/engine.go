package orders

import (
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
	"github.com/invoteam/invo-api/pkg/logger"
)

// Engine materializa órdenes de venta y compra a partir de líneas, calcula
// totales, descuenta o suma stock y escribe el libro de movimientos, todo en
// una transacción por orden. Una línea inválida aborta la orden completa sin
// mutación parcial.
type Engine struct {
	txRunner     TxRunner
	stock        StockWriter
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	salesRepo    repository.SalesOrderRepository
	purchaseRepo repository.PurchaseOrderRepository
	evaluator    Evaluator
	log          *logger.Logger
}

// NewEngine construye el motor de órdenes.
func NewEngine(
	txRunner TxRunner,
	stock StockWriter,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	salesRepo repository.SalesOrderRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	evaluator Evaluator,
	log *logger.Logger,
) *Engine {
	return &Engine{
		txRunner:     txRunner,
		stock:        stock,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		salesRepo:    salesRepo,
		purchaseRepo: purchaseRepo,
		evaluator:    evaluator,
		log:          log,
	}
}

func toSalesOrderResponse(o *entity.SalesOrder, items []*entity.SalesOrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:        o.ID,
		PartyID:   o.CustomerID,
		PartyName: o.CustomerName,
		Date:      o.Date,
		Status:    o.Status,
		Total:     o.Total,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitValue: it.UnitPrice,
		})
	}
	return resp
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:        o.ID,
		PartyID:   o.SupplierID,
		PartyName: o.SupplierName,
		Date:      o.Date,
		Status:    o.Status,
		Total:     o.Total,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitValue: it.UnitCost,
		})
	}
	return resp
}
