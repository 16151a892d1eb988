package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para cuentas.
// Los métodos Get* devuelven (nil, nil) cuando no hay fila.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
	// List devuelve las cuentas más recientes; query filtra por nombre o
	// email (substring, case-insensitive).
	List(query string, limit int) ([]*entity.Account, error)
	Update(account *entity.Account) error
}
