package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// StockService es el único punto de escritura sobre la cantidad en bodega de
// un producto. Cada ajuste aplicado produce exactamente una fila en el libro
// de movimientos con el mismo delta.
//
// allowNegative controla la política de sobreventa para los descuentos
// originados en órdenes: false (por defecto) rechaza con ErrInsufficientStock;
// true permite stock negativo (modelo de backorder).
type StockService struct {
	txRunner      TxRunner
	allowNegative bool
}

// NewStockService construye el servicio de stock.
func NewStockService(txRunner TxRunner, allowNegative bool) *StockService {
	return &StockService{txRunner: txRunner, allowNegative: allowNegative}
}

// AdjustResult resultado de un ajuste: cantidad final y delta aplicado.
// Applied puede diferir del delta pedido solo en ajustes manuales con clamp.
type AdjustResult struct {
	Stock   int
	Applied int
}

// Adjust aplica un ajuste manual de stock en su propia transacción: bloquea la
// fila del producto (SELECT FOR UPDATE), calcula la nueva cantidad y escribe
// el movimiento. Decrementar con stock en cero es un no-op (cantidad fijada en
// 0, sin fila de movimiento); un decremento mayor al stock disponible se
// recorta para no dejar la cantidad negativa.
func (s *StockService) Adjust(ctx context.Context, accountID, productID string, delta int, reference string) (AdjustResult, error) {
	if delta == 0 {
		return AdjustResult{}, domain.ErrInvalidInput
	}
	var result AdjustResult
	err := s.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(accountID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		applied := delta
		if newQty := product.Stock + delta; newQty < 0 {
			applied = -product.Stock
		}
		if applied == 0 {
			result = AdjustResult{Stock: product.Stock, Applied: 0}
			return nil
		}
		newQty := product.Stock + applied
		if err := productRepo.UpdateStock(accountID, productID, newQty); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:        uuid.New().String(),
			AccountID: accountID,
			ProductID: productID,
			Change:    applied,
			Reason:    entity.MovementReasonAdjust,
			Reference: reference,
			CreatedAt: time.Now(),
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = AdjustResult{Stock: newQty, Applied: applied}
		return nil
	})
	if err != nil {
		return AdjustResult{}, err
	}
	return result, nil
}

// ApplyDeltaInTx aplica un delta de stock sobre un producto ya bloqueado por
// el caller (GetForUpdate dentro de su transacción) usando los repositorios de
// esa misma tx. No hace Commit: la frontera transaccional es del caller. Un
// delta negativo que dejaría la cantidad bajo cero se rechaza con
// ErrInsufficientStock salvo que la política de stock negativo esté habilitada.
// Actualiza product.Stock con la cantidad resultante.
func (s *StockService) ApplyDeltaInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	delta int,
	reason, reference string,
	now time.Time,
) (int, error) {
	if delta == 0 {
		return 0, domain.ErrInvalidInput
	}
	newQty := product.Stock + delta
	if newQty < 0 && !s.allowNegative {
		return 0, domain.ErrInsufficientStock
	}
	if err := productRepo.UpdateStock(product.AccountID, product.ID, newQty); err != nil {
		return 0, err
	}
	mov := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		AccountID: product.AccountID,
		ProductID: product.ID,
		Change:    delta,
		Reason:    reason,
		Reference: reference,
		CreatedAt: now,
	}
	if err := movRepo.Create(mov); err != nil {
		return 0, err
	}
	product.Stock = newQty
	return newQty, nil
}
