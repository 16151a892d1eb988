package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/application/inventory"
	"github.com/invoteam/invo-api/internal/application/usecase"
	"github.com/invoteam/invo-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	stock *inventory.StockService
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stock *inventory.StockService) *ProductHandler {
	return &ProductHandler{uc: uc, stock: stock}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son requeridos"})
	}
	out, err := h.uc.Create(GetAccountID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "SKU ya existe en esta cuenta"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetAccountID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos agrupados por categoría
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Búsqueda por nombre o SKU"
// @Success      200  {array}  dto.ProductGroup
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetAccountID(c), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetAccountID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar inventario como CSV
// @Tags         products
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/products/export [get]
func (h *ProductHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.uc.ExportCSV(GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("inventory_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Increment godoc
// @Summary      Incrementar stock en 1 (ajuste manual)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.AdjustStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/increment [post]
func (h *ProductHandler) Increment(c *fiber.Ctx) error {
	return h.quickAdjust(c, 1)
}

// Decrement godoc
// @Summary      Decrementar stock en 1 (ajuste manual; no-op en cero)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.AdjustStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/decrement [post]
func (h *ProductHandler) Decrement(c *fiber.Ctx) error {
	return h.quickAdjust(c, -1)
}

func (h *ProductHandler) quickAdjust(c *fiber.Ctx, delta int) error {
	productID := c.Params("id")
	// Referencia "ui": ajuste rápido de ±1 desde la interfaz.
	result, err := h.stock.Adjust(c.Context(), GetAccountID(c), productID, delta, "ui")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{ProductID: productID, Stock: result.Stock, Applied: result.Applied})
}
