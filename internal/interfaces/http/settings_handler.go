package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/application/usecase"
)

// SettingsHandler preferencias de la cuenta autenticada.
type SettingsHandler struct {
	uc *usecase.AccountUseCase
}

func NewSettingsHandler(uc *usecase.AccountUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Preferencias de la cuenta
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSettings(GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar el color de tema de la interfaz
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "Preferencias"
// @Success      200   {object}  dto.SettingsResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateTheme(GetAccountID(c), in.ThemeColor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResetParties godoc
// @Summary      Eliminar todos los clientes y proveedores de la cuenta
// @Tags         settings
// @Security     Bearer
// @Success      204  "sin contenido"
// @Router       /api/parties/reset [post]
func (h *SettingsHandler) ResetParties(c *fiber.Ctx) error {
	if err := h.uc.ResetParties(c.Context(), GetAccountID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
