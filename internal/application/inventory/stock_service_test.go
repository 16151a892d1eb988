package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoteam/invo-api/internal/application/inventory"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Solo implementan los métodos que el motor de stock toca;
// el resto hereda del interface embebido y entra en pánico si se invoca.
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := &memProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductRepo) GetForUpdate(accountID, id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok || p.AccountID != accountID {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (m *memProductRepo) UpdateStock(accountID, id string, stock int) error {
	p, ok := m.products[id]
	if !ok || p.AccountID != accountID {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

type memMovementRepo struct {
	repository.InventoryMovementRepository
	movements []*entity.InventoryMovement
}

func (m *memMovementRepo) Create(mov *entity.InventoryMovement) error {
	m.movements = append(m.movements, mov)
	return nil
}

// memTxRunner ejecuta fn directamente sobre los fakes, sin transacción real.
type memTxRunner struct {
	products *memProductRepo
	mov      *memMovementRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.mov, r.products)
}

func newStockFixture(stock int) (*inventory.StockService, *memProductRepo, *memMovementRepo) {
	products := newMemProductRepo(&entity.Product{
		ID:        "p1",
		AccountID: "acc1",
		SKU:       "SKU-1",
		Name:      "Café molido",
		Price:     decimal.NewFromInt(10),
		Stock:     stock,
	})
	mov := &memMovementRepo{}
	svc := inventory.NewStockService(&memTxRunner{products: products, mov: mov}, false)
	return svc, products, mov
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_IncrementoEscribeMovimiento(t *testing.T) {
	svc, products, mov := newStockFixture(5)

	result, err := svc.Adjust(context.Background(), "acc1", "p1", 7, "conteo físico")
	require.NoError(t, err)

	assert.Equal(t, 12, result.Stock)
	assert.Equal(t, 7, result.Applied)
	assert.Equal(t, 12, products.products["p1"].Stock)

	require.Len(t, mov.movements, 1)
	m := mov.movements[0]
	assert.Equal(t, 7, m.Change)
	assert.Equal(t, entity.MovementReasonAdjust, m.Reason)
	assert.Equal(t, "conteo físico", m.Reference)
}

func TestAdjust_DecrementoMayorAlStockSeRecorta(t *testing.T) {
	svc, products, mov := newStockFixture(3)

	result, err := svc.Adjust(context.Background(), "acc1", "p1", -5, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stock, "la cantidad nunca queda negativa en ajustes manuales")
	assert.Equal(t, -3, result.Applied, "solo se aplica el delta disponible")
	assert.Equal(t, 0, products.products["p1"].Stock)

	require.Len(t, mov.movements, 1)
	assert.Equal(t, -3, mov.movements[0].Change, "el movimiento registra el delta aplicado, no el pedido")
}

func TestAdjust_DecrementoEnCeroEsNoOp(t *testing.T) {
	svc, products, mov := newStockFixture(0)

	result, err := svc.Adjust(context.Background(), "acc1", "p1", -2, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stock)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 0, products.products["p1"].Stock)
	assert.Empty(t, mov.movements, "un ajuste con delta aplicado cero no escribe fila en el libro")
}

func TestAdjust_DeltaCeroEsInvalido(t *testing.T) {
	svc, _, _ := newStockFixture(5)

	_, err := svc.Adjust(context.Background(), "acc1", "p1", 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_ProductoDeOtraCuentaEsNotFound(t *testing.T) {
	svc, _, mov := newStockFixture(5)

	_, err := svc.Adjust(context.Background(), "acc2", "p1", 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, mov.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDeltaInTx (camino usado por el motor de órdenes)
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDeltaInTx_RechazaStockInsuficiente(t *testing.T) {
	svc, products, mov := newStockFixture(2)

	product, err := products.GetForUpdate("acc1", "p1")
	require.NoError(t, err)

	_, err = svc.ApplyDeltaInTx(mov, products, product, -3, entity.MovementReasonSale, "order-1", time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, mov.movements)
	assert.Equal(t, 2, products.products["p1"].Stock, "el rechazo no toca el stock")
}

func TestApplyDeltaInTx_PoliticaNegativaPermiteSobreventa(t *testing.T) {
	products := newMemProductRepo(&entity.Product{ID: "p1", AccountID: "acc1", Stock: 2})
	mov := &memMovementRepo{}
	svc := inventory.NewStockService(&memTxRunner{products: products, mov: mov}, true)

	product, err := products.GetForUpdate("acc1", "p1")
	require.NoError(t, err)

	newQty, err := svc.ApplyDeltaInTx(mov, products, product, -5, entity.MovementReasonSale, "order-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, -3, newQty)
	assert.Equal(t, -3, product.Stock, "el producto en memoria refleja la cantidad resultante")
	require.Len(t, mov.movements, 1)
	assert.Equal(t, -5, mov.movements[0].Change)
	assert.Equal(t, "order-1", mov.movements[0].Reference)
}

func TestApplyDeltaInTx_ActualizaProductoYLibro(t *testing.T) {
	svc, products, mov := newStockFixture(4)

	product, err := products.GetForUpdate("acc1", "p1")
	require.NoError(t, err)

	newQty, err := svc.ApplyDeltaInTx(mov, products, product, 6, entity.MovementReasonPurchase, "po-9", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 10, newQty)
	assert.Equal(t, 10, products.products["p1"].Stock)
	require.Len(t, mov.movements, 1)
	assert.Equal(t, entity.MovementReasonPurchase, mov.movements[0].Reason)
}
