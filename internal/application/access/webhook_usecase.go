package access

import (
	"context"

	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/pkg/logger"
)

// PaymentInfo estado de un pago consultado al proveedor.
type PaymentInfo struct {
	ID         string
	Status     string
	PayerEmail string
	Amount     float64
}

// PaymentFetcher consulta un pago por id (API de Mercado Pago).
type PaymentFetcher interface {
	GetPayment(ctx context.Context, id string) (*PaymentInfo, error)
}

// Eventos y estados de Stripe que confirman un pago.
var stripePaidEvents = map[string]bool{
	"checkout.session.completed": true,
	"payment_intent.succeeded":   true,
}

var stripePaidStatuses = map[string]bool{
	"paid": true, "succeeded": true, "requires_capture": true, "": true,
}

// WebhookUseCase convierte notificaciones de pago confirmadas en claves de
// licencia emitidas. La deduplicación por id de evento vive en IssuePaidKey.
type WebhookUseCase struct {
	licenses *LicenseUseCase
	payments PaymentFetcher
	log      *logger.Logger
}

// NewWebhookUseCase construye el caso de uso.
func NewWebhookUseCase(licenses *LicenseUseCase, payments PaymentFetcher, log *logger.Logger) *WebhookUseCase {
	return &WebhookUseCase{licenses: licenses, payments: payments, log: log}
}

// ProcessStripeEvent procesa un evento de Stripe ya verificado por firma.
// Montos en centavos: >= 1500 (USD 15) compra el plan anual. Eventos que no
// confirman pago se ignoran sin error.
func (uc *WebhookUseCase) ProcessStripeEvent(eventType, eventID, email, paymentStatus string, amountCents int64) error {
	if !stripePaidEvents[eventType] || !stripePaidStatuses[paymentStatus] {
		return nil
	}
	if email == "" {
		return nil
	}
	plan := entity.PlanMonthly
	if amountCents >= 1500 {
		plan = entity.PlanAnnual
	}
	key, err := uc.licenses.IssuePaidKey(email, plan, entity.PaymentSourceStripe, eventID)
	if err != nil {
		return err
	}
	uc.log.Info().Str("source", entity.PaymentSourceStripe).Str("plan", key.Plan).Msg("clave de licencia emitida por pago")
	return nil
}

// ProcessMercadoPagoNotification consulta el pago notificado y, si está
// aprobado, emite la clave. Monto >= 100 compra el plan anual.
func (uc *WebhookUseCase) ProcessMercadoPagoNotification(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return domain.ErrInvalidInput
	}
	info, err := uc.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if info.Status != "approved" || info.PayerEmail == "" {
		return nil
	}
	plan := entity.PlanMonthly
	if info.Amount >= 100 {
		plan = entity.PlanAnnual
	}
	key, err := uc.licenses.IssuePaidKey(info.PayerEmail, plan, entity.PaymentSourceMercadoPago, paymentID)
	if err != nil {
		return err
	}
	uc.log.Info().Str("source", entity.PaymentSourceMercadoPago).Str("plan", key.Plan).Msg("clave de licencia emitida por pago")
	return nil
}
