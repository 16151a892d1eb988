package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/invoteam/invo-api/internal/application/access"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/infrastructure/payments"
	"github.com/invoteam/invo-api/pkg/logger"
)

// WebhookHandler recibe notificaciones de pago de Stripe y Mercado Pago
// (público, autenticado por firma o por consulta al proveedor).
type WebhookHandler struct {
	webhooks            *access.WebhookUseCase
	stripeWebhookSecret string
	log                 *logger.Logger
}

func NewWebhookHandler(webhooks *access.WebhookUseCase, stripeWebhookSecret string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, stripeWebhookSecret: stripeWebhookSecret, log: log}
}

// stripeEvent subconjunto del payload que interesa. checkout.session usa
// payment_status/amount_total/customer_details; payment_intent usa
// status/amount/receipt_email.
type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			PaymentStatus   string `json:"payment_status"`
			Status          string `json:"status"`
			AmountTotal     int64  `json:"amount_total"`
			Amount          int64  `json:"amount"`
			CustomerEmail   string `json:"customer_email"`
			ReceiptEmail    string `json:"receipt_email"`
			CustomerDetails struct {
				Email string `json:"email"`
			} `json:"customer_details"`
		} `json:"object"`
	} `json:"data"`
}

// Stripe godoc
// @Summary      Webhook de Stripe (verificado por firma HMAC)
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /webhooks/stripe [post]
func (h *WebhookHandler) Stripe(c *fiber.Ctx) error {
	payload := c.Body()
	if !payments.VerifyStripeSignature(payload, c.Get("Stripe-Signature"), h.stripeWebhookSecret) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "payload inválido"})
	}

	obj := event.Data.Object
	email := obj.CustomerDetails.Email
	if email == "" {
		email = obj.CustomerEmail
	}
	if email == "" {
		email = obj.ReceiptEmail
	}
	status := obj.PaymentStatus
	if status == "" {
		status = obj.Status
	}
	amount := obj.AmountTotal
	if amount == 0 {
		amount = obj.Amount
	}

	if err := h.webhooks.ProcessStripeEvent(event.Type, event.ID, email, status, amount); err != nil {
		h.log.Error().Err(err).Str("event_id", event.ID).Msg("error procesando evento de stripe")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error procesando el evento"})
	}
	return c.JSON(fiber.Map{"received": true})
}

// MercadoPago godoc
// @Summary      Webhook de Mercado Pago (consulta el pago notificado)
// @Tags         webhooks
// @Produce      json
// @Param        data.id  query  string  false  "ID del pago"
// @Success      200  {object}  map[string]bool
// @Router       /webhooks/mercadopago [post]
func (h *WebhookHandler) MercadoPago(c *fiber.Ctx) error {
	topic := c.Query("type", c.Query("topic"))
	if topic != "" && topic != "payment" {
		return c.JSON(fiber.Map{"received": true})
	}
	paymentID := c.Query("data.id", c.Query("id"))
	if paymentID == "" {
		// Formato alternativo: el id viene en el cuerpo {"data":{"id":"..."}}.
		var body struct {
			Data struct {
				ID json.Number `json:"id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil {
			paymentID = body.Data.ID.String()
		}
	}
	if err := h.webhooks.ProcessMercadoPagoNotification(c.Context(), paymentID); err != nil {
		h.log.Error().Err(err).Str("payment_id", paymentID).Msg("error procesando notificación de mercado pago")
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"received": true})
}
