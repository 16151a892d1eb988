package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

var _ repository.LicenseKeyRepository = (*LicenseKeyRepo)(nil)

const licenseKeyColumns = `id, code, plan, issued_to_email, redeemed_by_account, redeemed_at, expires_at, payment_source, payment_event_id, status, currency, created_at`

// LicenseKeyRepo implementación del puerto LicenseKeyRepository sobre
// PostgreSQL. El par (payment_source, payment_event_id) lleva un índice único
// parcial (payment_event_id <> '') que dedupe entregas repetidas de webhooks.
type LicenseKeyRepo struct {
	q Querier
}

func NewLicenseKeyRepository(q Querier) *LicenseKeyRepo {
	return &LicenseKeyRepo{q: q}
}

// Create persiste una clave. Código o evento de pago duplicado mapea a ErrDuplicate.
func (r *LicenseKeyRepo) Create(key *entity.LicenseKey) error {
	query := `
		INSERT INTO license_keys (` + licenseKeyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		key.ID, key.Code, key.Plan, key.IssuedToEmail, key.RedeemedByAccount,
		key.RedeemedAt, key.ExpiresAt, key.PaymentSource, key.PaymentEventID,
		key.Status, key.Currency, key.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert license key: %w", err)
	}
	return nil
}

// GetByCode obtiene una clave por su código normalizado.
func (r *LicenseKeyRepo) GetByCode(code string) (*entity.LicenseKey, error) {
	query := `SELECT ` + licenseKeyColumns + ` FROM license_keys WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// GetByPaymentEvent busca la clave emitida por un evento de pago externo.
func (r *LicenseKeyRepo) GetByPaymentEvent(source, eventID string) (*entity.LicenseKey, error) {
	query := `
		SELECT ` + licenseKeyColumns + `
		FROM license_keys
		WHERE payment_source = $1 AND payment_event_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, source, eventID))
}

// HasActiveForAccount indica si la cuenta tiene una clave canjeada, activa y
// con vencimiento nulo o futuro.
func (r *LicenseKeyRepo) HasActiveForAccount(accountID string, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM license_keys
			WHERE redeemed_by_account = $1
			  AND status = 'active'
			  AND (expires_at IS NULL OR expires_at > $2)
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, accountID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active license: %w", err)
	}
	return exists, nil
}

// LatestUnredeemedByEmail devuelve la clave sin canjear más reciente emitida
// al email dado.
func (r *LicenseKeyRepo) LatestUnredeemedByEmail(email string) (*entity.LicenseKey, error) {
	query := `
		SELECT ` + licenseKeyColumns + `
		FROM license_keys
		WHERE issued_to_email = $1 AND redeemed_by_account IS NULL
		ORDER BY created_at DESC
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// LatestRedeemedByAccount devuelve la clave canjeada más reciente de la cuenta.
func (r *LicenseKeyRepo) LatestRedeemedByAccount(accountID string) (*entity.LicenseKey, error) {
	query := `
		SELECT ` + licenseKeyColumns + `
		FROM license_keys
		WHERE redeemed_by_account = $1
		ORDER BY redeemed_at DESC
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, accountID))
}

// MarkRedeemed ata la clave a la cuenta. Solo aplica sobre claves sin canjear:
// un canje concurrente de la misma clave deja RowsAffected en 0 y devuelve
// ErrConflict.
func (r *LicenseKeyRepo) MarkRedeemed(id, accountID string, at time.Time) error {
	query := `
		UPDATE license_keys SET redeemed_by_account = $1, redeemed_at = $2
		WHERE id = $3 AND redeemed_by_account IS NULL`
	tag, err := r.q.Exec(context.Background(), query, accountID, at, id)
	if err != nil {
		return fmt.Errorf("mark redeemed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista las claves más recientes (panel de administración).
func (r *LicenseKeyRepo) List(limit int) ([]*entity.LicenseKey, error) {
	query := `
		SELECT ` + licenseKeyColumns + `
		FROM license_keys
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list license keys: %w", err)
	}
	defer rows.Close()

	var keys []*entity.LicenseKey
	for rows.Next() {
		var k entity.LicenseKey
		if err := rows.Scan(
			&k.ID, &k.Code, &k.Plan, &k.IssuedToEmail, &k.RedeemedByAccount,
			&k.RedeemedAt, &k.ExpiresAt, &k.PaymentSource, &k.PaymentEventID,
			&k.Status, &k.Currency, &k.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan license key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (r *LicenseKeyRepo) scanOne(row pgx.Row) (*entity.LicenseKey, error) {
	var k entity.LicenseKey
	err := row.Scan(
		&k.ID, &k.Code, &k.Plan, &k.IssuedToEmail, &k.RedeemedByAccount,
		&k.RedeemedAt, &k.ExpiresAt, &k.PaymentSource, &k.PaymentEventID,
		&k.Status, &k.Currency, &k.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get license key: %w", err)
	}
	return &k, nil
}
