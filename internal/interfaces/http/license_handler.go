package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/access"
	"github.com/invoteam/invo-api/internal/application/dto"
)

// LicenseHandler maneja el canje y consulta de claves de licencia, más el
// panel admin de emisión.
type LicenseHandler struct {
	licenses *access.LicenseUseCase
	gate     *access.Gate
}

func NewLicenseHandler(licenses *access.LicenseUseCase, gate *access.Gate) *LicenseHandler {
	return &LicenseHandler{licenses: licenses, gate: gate}
}

// Redeem godoc
// @Summary      Canjear una clave de licencia
// @Tags         license
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RedeemKeyRequest  true  "Código XXXX-XXXX-XXXX-XXXX"
// @Success      200   {object}  dto.AccessResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/license/redeem [post]
func (h *LicenseHandler) Redeem(c *fiber.Ctx) error {
	var in dto.RedeemKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.licenses.RedeemKey(GetAccountID(c), in.Code); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AccessResponse{Active: true})
}

// Retrieve godoc
// @Summary      Recuperar la última clave sin canjear emitida a un email
// @Tags         license
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RetrieveKeyRequest  true  "email del pago"
// @Success      200   {object}  dto.LicenseKeyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/license/retrieve [post]
func (h *LicenseHandler) Retrieve(c *fiber.Ctx) error {
	var in dto.RetrieveKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	out, err := h.licenses.RetrieveKeyByEmail(in.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Clave canjeada vigente de la cuenta
// @Tags         license
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LicenseKeyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/license/current [get]
func (h *LicenseHandler) Current(c *fiber.Ctx) error {
	out, err := h.licenses.CurrentKey(GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Access godoc
// @Summary      Estado de acceso pago de la cuenta
// @Tags         license
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AccessResponse
// @Router       /api/license/access [get]
func (h *LicenseHandler) Access(c *fiber.Ctx) error {
	active, err := h.gate.HasActiveAccess(GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AccessResponse{Active: active})
}

// IssueKey godoc
// @Summary      Emitir una clave manual (solo admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueKeyRequest  true  "plan: monthly o annual"
// @Success      201   {object}  dto.LicenseKeyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/keys [post]
func (h *LicenseHandler) IssueKey(c *fiber.Ctx) error {
	var in dto.IssueKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	key, err := h.licenses.IssueKey(in.Plan)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"code":       key.Code,
		"plan":       key.Plan,
		"expires_at": key.ExpiresAt,
	})
}

// ListKeys godoc
// @Summary      Listar claves emitidas (solo admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {array}  dto.LicenseKeyResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/admin/keys [get]
func (h *LicenseHandler) ListKeys(c *fiber.Ctx) error {
	out, err := h.licenses.ListKeys(c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
