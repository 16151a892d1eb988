package usecase

import (
	"github.com/google/uuid"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías de productos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre repetido dentro de la cuenta devuelve
// ErrDuplicate.
func (uc *CategoryUseCase) Create(accountID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name, Description: category.Description}, nil
}

// List lista las categorías de la cuenta ordenadas por nombre.
func (uc *CategoryUseCase) List(accountID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}
