package entity

import "time"

// Planes y estados de licencia.
const (
	PlanMonthly = "monthly"
	PlanAnnual  = "annual"

	LicenseStatusActive  = "active"
	LicenseStatusRevoked = "revoked"
)

// Fuentes de pago que alimentan la emisión de claves.
const (
	PaymentSourceStripe      = "stripe"
	PaymentSourceMercadoPago = "mpago"
)

// LicenseKey es una clave de licencia canjeable. El acceso pago de una cuenta
// depende de tener una clave canjeada, activa y no vencida.
// PaymentEventID deduplica entregas repetidas de webhooks de pago: reenviar
// el mismo evento no emite una segunda clave.
type LicenseKey struct {
	ID                string
	Code              string // único global, formato XXXX-XXXX-XXXX-XXXX
	Plan              string
	IssuedToEmail     string
	RedeemedByAccount *string
	RedeemedAt        *time.Time
	ExpiresAt         *time.Time // nil = sin vencimiento
	PaymentSource     string
	PaymentEventID    string // id del evento externo; vacío en claves manuales
	Status            string
	Currency          string
	CreatedAt         time.Time
}

// ActiveFor indica si la clave otorga acceso a la cuenta en el instante dado.
func (k *LicenseKey) ActiveFor(accountID string, now time.Time) bool {
	if k.RedeemedByAccount == nil || *k.RedeemedByAccount != accountID {
		return false
	}
	if k.Status != LicenseStatusActive {
		return false
	}
	return k.ExpiresAt == nil || k.ExpiresAt.After(now)
}

// Redeemable indica si la clave puede canjearse en el instante dado. Una
// clave revocada no es canjeable: el canje nunca reactiva una clave.
func (k *LicenseKey) Redeemable(now time.Time) bool {
	if k.RedeemedByAccount != nil || k.Status != LicenseStatusActive {
		return false
	}
	return k.ExpiresAt == nil || k.ExpiresAt.After(now)
}
