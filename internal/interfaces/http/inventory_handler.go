package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/application/inventory"
)

// InventoryHandler maneja ajustes manuales de stock y el libro de movimientos
// (protegido).
type InventoryHandler struct {
	stock     *inventory.StockService
	movements *inventory.MovementUseCase
}

func NewInventoryHandler(stock *inventory.StockService, movements *inventory.MovementUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, movements: movements}
}

// Adjust godoc
// @Summary      Ajustar stock manualmente (delta con signo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "delta distinto de cero, reference opcional"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta debe ser distinto de cero"})
	}
	productID := c.Params("id")
	result, err := h.stock.Adjust(c.Context(), GetAccountID(c), productID, in.Delta, in.Reference)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{ProductID: productID, Stock: result.Stock, Applied: result.Applied})
}

// ListByProduct godoc
// @Summary      Listar movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		page = dto.PageRequest{}
	}
	page.DefaultPage()
	out, err := h.movements.ListByProduct(GetAccountID(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByAccount godoc
// @Summary      Listar movimientos de la cuenta
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListByAccount(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		page = dto.PageRequest{}
	}
	page.DefaultPage()
	out, err := h.movements.ListByAccount(GetAccountID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
