package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/achievements"
	"github.com/invoteam/invo-api/internal/application/usecase"
)

// DashboardHandler maneja el tablero, las estadísticas y los logros (protegido).
type DashboardHandler struct {
	uc        *usecase.DashboardUseCase
	evaluator *achievements.Evaluator
}

func NewDashboardHandler(uc *usecase.DashboardUseCase, evaluator *achievements.Evaluator) *DashboardHandler {
	return &DashboardHandler{uc: uc, evaluator: evaluator}
}

// Stats godoc
// @Summary      Estadísticas de las últimas 24 horas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Datos del tablero: bajo stock, órdenes recientes, alertas y logros
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Achievements godoc
// @Summary      Listar logros desbloqueados
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AchievementResponse
// @Router       /api/achievements [get]
func (h *DashboardHandler) Achievements(c *fiber.Ctx) error {
	out, err := h.evaluator.List(GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
