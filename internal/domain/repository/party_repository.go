package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(accountID, id string) (*entity.Customer, error)
	// List busca por nombre/email/teléfono (case-insensitive) cuando query no
	// está vacío; ordena por nombre.
	List(accountID, query string, limit, offset int) ([]*entity.Customer, error)
}

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(accountID, id string) (*entity.Supplier, error)
	List(accountID, query string, limit, offset int) ([]*entity.Supplier, error)
}
