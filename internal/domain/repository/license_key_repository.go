package repository

import (
	"time"

	"github.com/invoteam/invo-api/internal/domain/entity"
)

// LicenseKeyRepository define el puerto de persistencia para claves de licencia.
type LicenseKeyRepository interface {
	Create(key *entity.LicenseKey) error
	GetByCode(code string) (*entity.LicenseKey, error)
	// GetByPaymentEvent busca la clave emitida por un evento de pago externo
	// (deduplicación de webhooks reintentados).
	GetByPaymentEvent(source, eventID string) (*entity.LicenseKey, error)
	// HasActiveForAccount indica si la cuenta tiene una clave canjeada, activa
	// y con vencimiento nulo o futuro.
	HasActiveForAccount(accountID string, now time.Time) (bool, error)
	LatestUnredeemedByEmail(email string) (*entity.LicenseKey, error)
	LatestRedeemedByAccount(accountID string) (*entity.LicenseKey, error)
	MarkRedeemed(id, accountID string, at time.Time) error
	List(limit int) ([]*entity.LicenseKey, error)
}
