package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todos los métodos están acotados por cuenta: un id de otra cuenta se
// comporta como inexistente (los Get* devuelven nil, nil).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(accountID, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(accountID, id string) (*entity.Product, error)
	GetBySKU(accountID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe la cantidad en bodega ya calculada por el motor de
	// inventario. No hace aritmética: el caller debe haber bloqueado la fila.
	UpdateStock(accountID, id string, stock int) error
	ListByAccount(accountID string, limit, offset int) ([]*entity.Product, error)
	Search(accountID, query string) ([]*entity.Product, error)
	ListLowStock(accountID string, threshold, limit int) ([]*entity.Product, error)
	CountByAccount(accountID string) (int, error)
	CountLowStock(accountID string, threshold int) (int, error)
}
