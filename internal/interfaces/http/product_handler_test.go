package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/application/inventory"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
	apphttp "github.com/invoteam/invo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el ajuste rápido de stock
// ──────────────────────────────────────────────────────────────────────────────

type quickProductRepo struct {
	repository.ProductRepository
	product *entity.Product
}

func (r *quickProductRepo) GetForUpdate(accountID, id string) (*entity.Product, error) {
	if r.product == nil || r.product.AccountID != accountID || r.product.ID != id {
		return nil, nil
	}
	clone := *r.product
	return &clone, nil
}

func (r *quickProductRepo) UpdateStock(accountID, id string, stock int) error {
	r.product.Stock = stock
	return nil
}

type quickMovementRepo struct {
	repository.InventoryMovementRepository
	movements []*entity.InventoryMovement
}

func (r *quickMovementRepo) Create(m *entity.InventoryMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

type quickTxRunner struct {
	products  *quickProductRepo
	movements *quickMovementRepo
}

func (r *quickTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movements, r.products)
}

// buildQuickAdjustApp construye una app con las rutas de incremento y
// decremento, inyectando el account id sin pasar por el JWT.
func buildQuickAdjustApp(stock int) (*fiber.App, *quickProductRepo, *quickMovementRepo) {
	products := &quickProductRepo{product: &entity.Product{
		ID:        "p1",
		AccountID: "acc1",
		Name:      "Jugo",
		Stock:     stock,
	}}
	movements := &quickMovementRepo{}
	svc := inventory.NewStockService(&quickTxRunner{products: products, movements: movements}, false)
	handler := apphttp.NewProductHandler(nil, svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalAccountID, "acc1")
		return c.Next()
	})
	app.Post("/products/:id/increment", handler.Increment)
	app.Post("/products/:id/decrement", handler.Decrement)
	return app, products, movements
}

func doQuickAdjust(t *testing.T, app *fiber.App, path string) dto.AdjustStockResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AdjustStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests incremento/decremento rápido
// ──────────────────────────────────────────────────────────────────────────────

func TestQuickIncrement_EscribeMovimientoConReferenciaUI(t *testing.T) {
	app, products, movements := buildQuickAdjustApp(5)

	out := doQuickAdjust(t, app, "/products/p1/increment")

	assert.Equal(t, 6, out.Stock)
	assert.Equal(t, 1, out.Applied)
	assert.Equal(t, 6, products.product.Stock)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, 1, movements.movements[0].Change)
	assert.Equal(t, entity.MovementReasonAdjust, movements.movements[0].Reason)
	assert.Equal(t, "ui", movements.movements[0].Reference)
}

func TestQuickDecrement_EnCeroEsNoOpSinMovimiento(t *testing.T) {
	app, products, movements := buildQuickAdjustApp(0)

	out := doQuickAdjust(t, app, "/products/p1/decrement")

	assert.Equal(t, 0, out.Stock)
	assert.Equal(t, 0, out.Applied)
	assert.Equal(t, 0, products.product.Stock)
	assert.Empty(t, movements.movements, "el clamp en cero no escribe fila en el libro")
}
