package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/access"
	"github.com/invoteam/invo-api/internal/application/dto"
)

// RequirePaidAccess bloquea con 402 las cuentas sin licencia activa. Va
// después del middleware de auth: necesita el AccountID en c.Locals.
func RequirePaidAccess(gate *access.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID := GetAccountID(c)
		active, err := gate.HasActiveAccess(accountID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if !active {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "PAYMENT_REQUIRED", Message: "se requiere una licencia activa"})
		}
		return c.Next()
	}
}
