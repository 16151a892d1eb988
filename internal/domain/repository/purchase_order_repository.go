package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	GetByID(accountID, id string) (*entity.PurchaseOrder, error)
	ListItems(accountID, orderID string) ([]*entity.PurchaseOrderItem, error)
	List(accountID, query string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListRecent(accountID string, limit int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(accountID, id, status string) error
	CountByAccount(accountID string) (int, error)
}
