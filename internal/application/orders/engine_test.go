package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/application/inventory"
	"github.com/invoteam/invo-api/internal/application/orders"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
	"github.com/invoteam/invo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El tx runner toma un snapshot antes de fn y lo restaura si
// fn falla, emulando el rollback de PostgreSQL para poder verificar la
// atomicidad de la orden.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products       map[string]*entity.Product
	movements      []*entity.InventoryMovement
	salesOrders    map[string]*entity.SalesOrder
	salesItems     []*entity.SalesOrderItem
	purchaseOrders map[string]*entity.PurchaseOrder
	purchaseItems  []*entity.PurchaseOrderItem
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{
		products:       map[string]*entity.Product{},
		salesOrders:    map[string]*entity.SalesOrder{},
		purchaseOrders: map[string]*entity.PurchaseOrder{},
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		clone := *p
		c.products[id] = &clone
	}
	c.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	for id, o := range s.salesOrders {
		clone := *o
		c.salesOrders[id] = &clone
	}
	c.salesItems = append([]*entity.SalesOrderItem(nil), s.salesItems...)
	for id, o := range s.purchaseOrders {
		clone := *o
		c.purchaseOrders[id] = &clone
	}
	c.purchaseItems = append([]*entity.PurchaseOrderItem(nil), s.purchaseItems...)
	return c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.movements = from.movements
	s.salesOrders = from.salesOrders
	s.salesItems = from.salesItems
	s.purchaseOrders = from.purchaseOrders
	s.purchaseItems = from.purchaseItems
}

type storeProductRepo struct {
	repository.ProductRepository
	s *memStore
}

func (r *storeProductRepo) GetForUpdate(accountID, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.AccountID != accountID {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *storeProductRepo) UpdateStock(accountID, id string, stock int) error {
	p, ok := r.s.products[id]
	if !ok || p.AccountID != accountID {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

type storeMovementRepo struct {
	repository.InventoryMovementRepository
	s *memStore
}

func (r *storeMovementRepo) Create(m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

type storeSalesRepo struct {
	repository.SalesOrderRepository
	s *memStore
}

func (r *storeSalesRepo) Create(o *entity.SalesOrder) error {
	clone := *o
	r.s.salesOrders[o.ID] = &clone
	return nil
}

func (r *storeSalesRepo) CreateItem(it *entity.SalesOrderItem) error {
	r.s.salesItems = append(r.s.salesItems, it)
	return nil
}

func (r *storeSalesRepo) GetByID(accountID, id string) (*entity.SalesOrder, error) {
	o, ok := r.s.salesOrders[id]
	if !ok || o.AccountID != accountID {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (r *storeSalesRepo) UpdateStatus(accountID, id, status string) error {
	o, ok := r.s.salesOrders[id]
	if !ok || o.AccountID != accountID {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

type storePurchaseRepo struct {
	repository.PurchaseOrderRepository
	s *memStore
}

func (r *storePurchaseRepo) Create(o *entity.PurchaseOrder) error {
	clone := *o
	r.s.purchaseOrders[o.ID] = &clone
	return nil
}

func (r *storePurchaseRepo) CreateItem(it *entity.PurchaseOrderItem) error {
	r.s.purchaseItems = append(r.s.purchaseItems, it)
	return nil
}

func (r *storePurchaseRepo) GetByID(accountID, id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.purchaseOrders[id]
	if !ok || o.AccountID != accountID {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (r *storePurchaseRepo) UpdateStatus(accountID, id, status string) error {
	o, ok := r.s.purchaseOrders[id]
	if !ok || o.AccountID != accountID {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

// storeTxRunner serializa las transacciones con un mutex, como hace el
// SELECT FOR UPDATE sobre la fila del producto en PostgreSQL.
type storeTxRunner struct {
	mu sync.Mutex
	s  *memStore
}

func (r *storeTxRunner) RunSales(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.SalesOrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&storeMovementRepo{s: r.s}, &storeProductRepo{s: r.s}, &storeSalesRepo{s: r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *storeTxRunner) RunPurchases(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&storeMovementRepo{s: r.s}, &storeProductRepo{s: r.s}, &storePurchaseRepo{s: r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type memPartyRepo struct {
	repository.CustomerRepository
	customers map[string]*entity.Customer
}

func (m *memPartyRepo) GetByID(accountID, id string) (*entity.Customer, error) {
	c, ok := m.customers[id]
	if !ok || c.AccountID != accountID {
		return nil, nil
	}
	return c, nil
}

type memSupplierRepo struct {
	repository.SupplierRepository
	suppliers map[string]*entity.Supplier
}

func (m *memSupplierRepo) GetByID(accountID, id string) (*entity.Supplier, error) {
	s, ok := m.suppliers[id]
	if !ok || s.AccountID != accountID {
		return nil, nil
	}
	return s, nil
}

// spyEvaluator registra las invocaciones post-commit. Protegido con mutex
// porque la evaluación ocurre fuera de la transacción serializada.
type spyEvaluator struct {
	mu            sync.Mutex
	afterSale     int
	afterPurchase int
}

func (e *spyEvaluator) EvaluateAfterSale(accountID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.afterSale++
	return nil
}

func (e *spyEvaluator) EvaluateAfterPurchase(accountID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.afterPurchase++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func newEngineFixture(allowNegative bool, products ...*entity.Product) (*orders.Engine, *memStore, *spyEvaluator) {
	store := newMemStore(products...)
	stock := inventory.NewStockService(nil, allowNegative)
	evaluator := &spyEvaluator{}
	engine := orders.NewEngine(
		&storeTxRunner{s: store},
		stock,
		&memPartyRepo{customers: map[string]*entity.Customer{
			"c1": {ID: "c1", AccountID: "acc1", Name: "Ana Pérez"},
		}},
		&memSupplierRepo{suppliers: map[string]*entity.Supplier{
			"s1": {ID: "s1", AccountID: "acc1", Name: "Distribuidora Sur"},
		}},
		&storeSalesRepo{s: store},
		&storePurchaseRepo{s: store},
		evaluator,
		logger.Nop(),
	)
	return engine, store, evaluator
}

func product(id string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:        id,
		AccountID: "acc1",
		SKU:       "SKU-" + id,
		Name:      "Producto " + id,
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSalesOrder_TotalStockYMovimientos(t *testing.T) {
	engine, store, evaluator := newEngineFixture(false, product("p1", 10, 5), product("p2", 3, 8))

	out, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines: []dto.SalesOrderLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 4},
		},
	})
	require.NoError(t, err)

	// Total = 2*10 + 4*3 = 32
	assert.True(t, decimal.NewFromInt(32).Equal(out.Total), "total esperado 32, obtenido %s", out.Total)
	assert.Equal(t, entity.OrderStatusClosed, out.Status, "la orden nace cerrada; open no es observable")
	assert.Equal(t, "Ana Pérez", out.PartyName)

	// Stock descontado
	assert.Equal(t, 3, store.products["p1"].Stock)
	assert.Equal(t, 4, store.products["p2"].Stock)

	// Una fila del libro por línea, razón sale, referencia a la orden
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementReasonSale, m.Reason)
		assert.Equal(t, out.ID, m.Reference)
		assert.Negative(t, m.Change)
	}

	// Líneas con snapshot de precio
	require.Len(t, store.salesItems, 2)
	assert.True(t, decimal.NewFromInt(10).Equal(store.salesItems[0].UnitPrice))

	assert.Equal(t, 1, evaluator.afterSale, "los logros se evalúan post-commit")
}

func TestCreateSalesOrder_SnapshotDePrecioNoSigueAlProducto(t *testing.T) {
	engine, store, _ := newEngineFixture(false, product("p1", 10, 5))

	out, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.SalesOrderLine{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	// Cambiar el precio después de la venta no altera la línea persistida.
	store.products["p1"].Price = decimal.NewFromInt(99)
	assert.True(t, decimal.NewFromInt(10).Equal(store.salesItems[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(10).Equal(out.Items[0].UnitValue))
}

func TestCreateSalesOrder_StockInsuficienteAbortaTodo(t *testing.T) {
	engine, store, evaluator := newEngineFixture(false, product("p1", 10, 5), product("p2", 3, 1))

	_, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines: []dto.SalesOrderLine{
			{ProductID: "p1", Quantity: 2}, // esta línea alcanzaría
			{ProductID: "p2", Quantity: 4}, // esta no
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó a medias: ni stock, ni movimientos, ni orden.
	assert.Equal(t, 5, store.products["p1"].Stock)
	assert.Equal(t, 1, store.products["p2"].Stock)
	assert.Empty(t, store.movements)
	assert.Empty(t, store.salesOrders)
	assert.Empty(t, store.salesItems)
	assert.Zero(t, evaluator.afterSale)
}

func TestCreateSalesOrder_SobreventaPermitidaConPolitica(t *testing.T) {
	engine, store, _ := newEngineFixture(true, product("p1", 10, 1))

	out, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.SalesOrderLine{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, -2, store.products["p1"].Stock, "backorder habilitado deja stock negativo")
	assert.True(t, decimal.NewFromInt(30).Equal(out.Total))
}

// Dos órdenes concurrentes sobre el mismo producto no pierden actualizaciones:
// el bloqueo de fila serializa las transacciones y el stock final refleja
// ambas deducciones.
func TestCreateSalesOrder_ConcurrentesSinPerderActualizaciones(t *testing.T) {
	engine, store, _ := newEngineFixture(false, product("p1", 10, 10))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, qty := range []int{3, 4} {
		wg.Add(1)
		go func(i, qty int) {
			defer wg.Done()
			_, errs[i] = engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
				CustomerID: "c1",
				Lines:      []dto.SalesOrderLine{{ProductID: "p1", Quantity: qty}},
			})
		}(i, qty)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// 10 - 3 - 4 = 3: ninguna deducción pisa a la otra
	assert.Equal(t, 3, store.products["p1"].Stock)
	require.Len(t, store.movements, 2)
	total := 0
	for _, m := range store.movements {
		total += m.Change
	}
	assert.Equal(t, -7, total)
	assert.Len(t, store.salesOrders, 2)
}

func TestCreateSalesOrder_ProductoDeOtraCuentaAborta(t *testing.T) {
	otherAccount := &entity.Product{ID: "px", AccountID: "acc2", Price: decimal.NewFromInt(5), Stock: 50}
	engine, store, _ := newEngineFixture(false, product("p1", 10, 5), otherAccount)

	_, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines: []dto.SalesOrderLine{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "px", Quantity: 1}, // de otra cuenta: se ve como inexistente
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, store.products["p1"].Stock)
	assert.Empty(t, store.movements)
}

func TestCreateSalesOrder_ValidaLineas(t *testing.T) {
	engine, _, _ := newEngineFixture(false, product("p1", 10, 5))

	_, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{CustomerID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.SalesOrderLine{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchaseOrder_SumaStockConCostoDelCaller(t *testing.T) {
	engine, store, evaluator := newEngineFixture(false, product("p1", 10, 2))

	out, err := engine.CreatePurchaseOrder(context.Background(), "acc1", dto.CreatePurchaseOrderRequest{
		SupplierID: "s1",
		Lines: []dto.PurchaseOrderLine{
			{ProductID: "p1", Quantity: 6, UnitCost: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	// Total = 6*4 = 24, con el costo suministrado (no el precio del producto)
	assert.True(t, decimal.NewFromInt(24).Equal(out.Total))
	assert.Equal(t, "Distribuidora Sur", out.PartyName)
	assert.Equal(t, 8, store.products["p1"].Stock)

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementReasonPurchase, store.movements[0].Reason)
	assert.Equal(t, 6, store.movements[0].Change)

	assert.Equal(t, 1, evaluator.afterPurchase)
}

func TestCreatePurchaseOrder_CostoNegativoEsInvalido(t *testing.T) {
	engine, _, _ := newEngineFixture(false, product("p1", 10, 2))

	_, err := engine.CreatePurchaseOrder(context.Background(), "acc1", dto.CreatePurchaseOrderRequest{
		SupplierID: "s1",
		Lines: []dto.PurchaseOrderLine{
			{ProductID: "p1", Quantity: 1, UnitCost: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalización
// ──────────────────────────────────────────────────────────────────────────────

func TestFinishSalesOrder_IdempotenteYSinEfectoEnStock(t *testing.T) {
	engine, store, _ := newEngineFixture(false, product("p1", 10, 5))

	out, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.SalesOrderLine{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, engine.FinishSalesOrder("acc1", out.ID))
	assert.Equal(t, entity.OrderStatusFinished, store.salesOrders[out.ID].Status)

	// Repetir no falla ni cambia nada.
	require.NoError(t, engine.FinishSalesOrder("acc1", out.ID))
	assert.Equal(t, 3, store.products["p1"].Stock, "finalizar no mueve stock")
	assert.Len(t, store.movements, 1)
}

func TestFinishSalesOrder_OrdenAjenaEsNotFound(t *testing.T) {
	engine, _, _ := newEngineFixture(false, product("p1", 10, 5))

	out, err := engine.CreateSalesOrder(context.Background(), "acc1", dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.SalesOrderLine{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	err = engine.FinishSalesOrder("acc2", out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
