package inventory

import (
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// MovementUseCase lecturas del libro de movimientos (auditoría).
type MovementUseCase struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo, productRepo: productRepo}
}

// ListByProduct lista los movimientos de un producto de la cuenta.
func (uc *MovementUseCase) ListByProduct(accountID, productID string, limit, offset int) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(accountID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByProduct(accountID, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListByAccount lista los movimientos recientes de toda la cuenta.
func (uc *MovementUseCase) ListByAccount(accountID string, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByAccount(accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func toMovementResponses(list []*entity.InventoryMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Change:    m.Change,
			Reason:    m.Reason,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
