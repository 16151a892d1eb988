package repository

import "github.com/invoteam/invo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(accountID, id string) (*entity.Category, error)
	ListByAccount(accountID string) ([]*entity.Category, error)
}
