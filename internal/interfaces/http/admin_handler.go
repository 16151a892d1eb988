package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/application/usecase"
)

// AdminHandler administración de cuentas (solo rol admin).
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListAccounts godoc
// @Summary      Listar cuentas (solo admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "Filtro por nombre o email"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200    {array}  dto.AdminAccountResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	out, err := h.uc.ListAccounts(c.Query("q"), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateAccount godoc
// @Summary      Editar una cuenta (solo admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "Datos; password vacío conserva el actual"
// @Success      204   "sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateAccount(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateAccount(c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAccount godoc
// @Summary      Eliminar una cuenta y todos sus datos (solo admin)
// @Tags         admin
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.uc.DeleteAccount(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetParties godoc
// @Summary      Eliminar clientes y proveedores de una cuenta (solo admin)
// @Tags         admin
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/reset-parties [post]
func (h *AdminHandler) ResetParties(c *fiber.Ctx) error {
	if err := h.uc.ResetParties(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
