package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// SalesOrderRepository define el puerto de persistencia para órdenes de venta.
// La orden posee sus líneas: se cargan explícitamente con ListItems, nunca por
// navegación implícita.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	CreateItem(item *entity.SalesOrderItem) error
	GetByID(accountID, id string) (*entity.SalesOrder, error)
	ListItems(accountID, orderID string) ([]*entity.SalesOrderItem, error)
	// List excluye órdenes finalizadas; query filtra por nombre de cliente.
	List(accountID, query string, limit, offset int) ([]*entity.SalesOrder, error)
	ListRecent(accountID string, limit int) ([]*entity.SalesOrder, error)
	UpdateStatus(accountID, id, status string) error
	CountByAccount(accountID string) (int, error)
}
