package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP para órdenes de venta y compra
// (protegido). Ambos recursos comparten el motor de órdenes.
type OrderHandler struct {
	engine *orders.Engine
}

func NewOrderHandler(engine *orders.Engine) *OrderHandler {
	return &OrderHandler{engine: engine}
}

// CreateSale godoc
// @Summary      Crear orden de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "customer_id y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *OrderHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.engine.CreateSalesOrder(c.Context(), GetAccountID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSales godoc
// @Summary      Listar órdenes de venta no finalizadas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre de cliente"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.OrderResponse
// @Router       /api/sales [get]
func (h *OrderHandler) ListSales(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		page = dto.PageRequest{}
	}
	page.DefaultPage()
	out, err := h.engine.ListSalesOrders(GetAccountID(c), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSale godoc
// @Summary      Obtener orden de venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *OrderHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.engine.GetSalesOrder(GetAccountID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinishSale godoc
// @Summary      Finalizar orden de venta (idempotente)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/finish [post]
func (h *OrderHandler) FinishSale(c *fiber.Ctx) error {
	if err := h.engine.FinishSalesOrder(GetAccountID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePurchase godoc
// @Summary      Crear orden de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "supplier_id y líneas con costo"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *OrderHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.engine.CreatePurchaseOrder(c.Context(), GetAccountID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPurchases godoc
// @Summary      Listar órdenes de compra no finalizadas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre de proveedor"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.OrderResponse
// @Router       /api/purchases [get]
func (h *OrderHandler) ListPurchases(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		page = dto.PageRequest{}
	}
	page.DefaultPage()
	out, err := h.engine.ListPurchaseOrders(GetAccountID(c), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPurchase godoc
// @Summary      Obtener orden de compra con sus líneas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *OrderHandler) GetPurchase(c *fiber.Ctx) error {
	out, err := h.engine.GetPurchaseOrder(GetAccountID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinishPurchase godoc
// @Summary      Finalizar orden de compra (idempotente)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/finish [post]
func (h *OrderHandler) FinishPurchase(c *fiber.Ctx) error {
	if err := h.engine.FinishPurchaseOrder(GetAccountID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
