package access_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoteam/invo-api/internal/application/access"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
	"github.com/invoteam/invo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memLicenseRepo struct {
	keys []*entity.LicenseKey
}

var _ repository.LicenseKeyRepository = (*memLicenseRepo)(nil)

func (m *memLicenseRepo) Create(key *entity.LicenseKey) error {
	for _, k := range m.keys {
		if k.Code == key.Code {
			return domain.ErrDuplicate
		}
		if key.PaymentEventID != "" && k.PaymentSource == key.PaymentSource && k.PaymentEventID == key.PaymentEventID {
			return domain.ErrDuplicate
		}
	}
	clone := *key
	m.keys = append(m.keys, &clone)
	return nil
}

func (m *memLicenseRepo) GetByCode(code string) (*entity.LicenseKey, error) {
	for _, k := range m.keys {
		if k.Code == code {
			clone := *k
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memLicenseRepo) GetByPaymentEvent(source, eventID string) (*entity.LicenseKey, error) {
	for _, k := range m.keys {
		if k.PaymentSource == source && k.PaymentEventID == eventID {
			clone := *k
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memLicenseRepo) HasActiveForAccount(accountID string, now time.Time) (bool, error) {
	for _, k := range m.keys {
		if k.ActiveFor(accountID, now) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLicenseRepo) LatestUnredeemedByEmail(email string) (*entity.LicenseKey, error) {
	var latest *entity.LicenseKey
	for _, k := range m.keys {
		if k.IssuedToEmail == email && k.RedeemedByAccount == nil {
			if latest == nil || k.CreatedAt.After(latest.CreatedAt) {
				latest = k
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (m *memLicenseRepo) LatestRedeemedByAccount(accountID string) (*entity.LicenseKey, error) {
	var latest *entity.LicenseKey
	for _, k := range m.keys {
		if k.RedeemedByAccount != nil && *k.RedeemedByAccount == accountID {
			if latest == nil || k.RedeemedAt.After(*latest.RedeemedAt) {
				latest = k
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (m *memLicenseRepo) MarkRedeemed(id, accountID string, at time.Time) error {
	for _, k := range m.keys {
		if k.ID == id {
			if k.RedeemedByAccount != nil {
				return domain.ErrConflict
			}
			k.RedeemedByAccount = &accountID
			redeemedAt := at
			k.RedeemedAt = &redeemedAt
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memLicenseRepo) List(limit int) ([]*entity.LicenseKey, error) {
	if limit > len(m.keys) {
		limit = len(m.keys)
	}
	return m.keys[:limit], nil
}

type memAccountRepo struct {
	repository.AccountRepository
	byEmail map[string]*entity.Account
}

func (m *memAccountRepo) GetByEmail(email string) (*entity.Account, error) {
	return m.byEmail[email], nil
}

func newLicenseFixture(accounts ...*entity.Account) (*access.LicenseUseCase, *memLicenseRepo, *access.Gate) {
	licenses := &memLicenseRepo{}
	byEmail := map[string]*entity.Account{}
	for _, a := range accounts {
		byEmail[a.Email] = a
	}
	uc := access.NewLicenseUseCase(licenses, &memAccountRepo{byEmail: byEmail})
	return uc, licenses, access.NewGate(licenses)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueKey_FormatoYVencimiento(t *testing.T) {
	uc, _, _ := newLicenseFixture()

	key, err := uc.IssueKey("annual")
	require.NoError(t, err)

	parts := strings.Split(key.Code, "-")
	require.Len(t, parts, 4, "código en cuatro grupos")
	for _, part := range parts {
		assert.Len(t, part, 4)
		assert.NotContains(t, part, "O", "alfabeto sin caracteres ambiguos")
		assert.NotContains(t, part, "0")
		assert.NotContains(t, part, "I")
		assert.NotContains(t, part, "1")
	}
	require.NotNil(t, key.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), *key.ExpiresAt, time.Minute)
	assert.Equal(t, entity.PlanAnnual, key.Plan)
}

func TestIssueKey_PlanDesconocidoCaeEnMensual(t *testing.T) {
	uc, _, _ := newLicenseFixture()

	key, err := uc.IssueKey("whatever")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanMonthly, key.Plan)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *key.ExpiresAt, time.Minute)
}

func TestIssuePaidKey_ReenvioDelMismoEventoNoEmiteOtraClave(t *testing.T) {
	uc, repo, _ := newLicenseFixture()

	first, err := uc.IssuePaidKey("buyer@example.com", "annual", entity.PaymentSourceStripe, "evt_1")
	require.NoError(t, err)

	// Stripe reintenta el webhook: misma clave, sin fila nueva.
	second, err := uc.IssuePaidKey("buyer@example.com", "annual", entity.PaymentSourceStripe, "evt_1")
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Len(t, repo.keys, 1)
}

func TestIssuePaidKey_AutoCanjeaSiLaCuentaExiste(t *testing.T) {
	uc, _, gate := newLicenseFixture(&entity.Account{ID: "acc1", Email: "buyer@example.com"})

	key, err := uc.IssuePaidKey("Buyer@Example.com", "monthly", entity.PaymentSourceMercadoPago, "pay_9")
	require.NoError(t, err)

	require.NotNil(t, key.RedeemedByAccount)
	assert.Equal(t, "acc1", *key.RedeemedByAccount)
	assert.Equal(t, "BRL", key.Currency)

	active, err := gate.HasActiveAccess("acc1")
	require.NoError(t, err)
	assert.True(t, active, "el pago con cuenta existente otorga acceso de inmediato")
}

// ──────────────────────────────────────────────────────────────────────────────
// Canje y gate
// ──────────────────────────────────────────────────────────────────────────────

func TestRedeemKey_OtorgaAcceso(t *testing.T) {
	uc, _, gate := newLicenseFixture()

	key, err := uc.IssueKey("monthly")
	require.NoError(t, err)

	active, err := gate.HasActiveAccess("acc1")
	require.NoError(t, err)
	require.False(t, active, "sin canje no hay acceso")

	// El canje normaliza el código (minúsculas y espacios).
	require.NoError(t, uc.RedeemKey("acc1", "  "+strings.ToLower(key.Code)+" "))

	active, err = gate.HasActiveAccess("acc1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestRedeemKey_ClaveYaCanjeadaEsInvalida(t *testing.T) {
	uc, _, _ := newLicenseFixture()

	key, err := uc.IssueKey("monthly")
	require.NoError(t, err)
	require.NoError(t, uc.RedeemKey("acc1", key.Code))

	err = uc.RedeemKey("acc2", key.Code)
	assert.ErrorIs(t, err, domain.ErrInvalidLicenseKey)
}

func TestRedeemKey_ClaveInexistenteEsInvalida(t *testing.T) {
	uc, _, _ := newLicenseFixture()

	err := uc.RedeemKey("acc1", "AAAA-BBBB-CCCC-DDDD")
	assert.ErrorIs(t, err, domain.ErrInvalidLicenseKey)
}

// Revocar una clave la saca de circulación: el canje no la reactiva.
func TestRedeemKey_ClaveRevocadaNoEsCanjeable(t *testing.T) {
	uc, repo, gate := newLicenseFixture()

	key, err := uc.IssueKey("monthly")
	require.NoError(t, err)
	repo.keys[0].Status = entity.LicenseStatusRevoked

	err = uc.RedeemKey("acc1", key.Code)
	assert.ErrorIs(t, err, domain.ErrInvalidLicenseKey)

	active, err := gate.HasActiveAccess("acc1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestGate_ClaveVencidaNoOtorgaAcceso(t *testing.T) {
	_, repo, gate := newLicenseFixture()

	accountID := "acc1"
	expired := time.Now().Add(-time.Hour)
	redeemedAt := time.Now().Add(-48 * time.Hour)
	repo.keys = append(repo.keys, &entity.LicenseKey{
		ID:                "k1",
		Code:              "AAAA-BBBB-CCCC-DDDD",
		RedeemedByAccount: &accountID,
		RedeemedAt:        &redeemedAt,
		ExpiresAt:         &expired,
		Status:            entity.LicenseStatusActive,
	})

	active, err := gate.HasActiveAccess("acc1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestGate_VencimientoNuloEsVitalicio(t *testing.T) {
	_, repo, gate := newLicenseFixture()

	accountID := "acc1"
	redeemedAt := time.Now().Add(-24 * time.Hour)
	repo.keys = append(repo.keys, &entity.LicenseKey{
		ID:                "k1",
		Code:              "AAAA-BBBB-CCCC-DDDD",
		RedeemedByAccount: &accountID,
		RedeemedAt:        &redeemedAt,
		ExpiresAt:         nil,
		Status:            entity.LicenseStatusActive,
	})

	active, err := gate.HasActiveAccess("acc1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestGate_ClaveRevocadaNoOtorgaAcceso(t *testing.T) {
	_, repo, gate := newLicenseFixture()

	accountID := "acc1"
	redeemedAt := time.Now()
	repo.keys = append(repo.keys, &entity.LicenseKey{
		ID:                "k1",
		Code:              "AAAA-BBBB-CCCC-DDDD",
		RedeemedByAccount: &accountID,
		RedeemedAt:        &redeemedAt,
		Status:            entity.LicenseStatusRevoked,
	})

	active, err := gate.HasActiveAccess("acc1")
	require.NoError(t, err)
	assert.False(t, active)
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhooks
// ──────────────────────────────────────────────────────────────────────────────

type fakePaymentFetcher struct {
	payment *access.PaymentInfo
}

func (f *fakePaymentFetcher) GetPayment(ctx context.Context, id string) (*access.PaymentInfo, error) {
	return f.payment, nil
}

func TestProcessStripeEvent_MontoDecideElPlan(t *testing.T) {
	uc, repo, _ := newLicenseFixture()
	webhooks := access.NewWebhookUseCase(uc, nil, logger.Nop())

	// 1500 centavos (USD 15) compra el plan anual.
	require.NoError(t, webhooks.ProcessStripeEvent("checkout.session.completed", "evt_a", "a@b.com", "paid", 1500))
	require.Len(t, repo.keys, 1)
	assert.Equal(t, entity.PlanAnnual, repo.keys[0].Plan)
	assert.Equal(t, "USD", repo.keys[0].Currency)

	// Bajo el umbral queda en mensual.
	require.NoError(t, webhooks.ProcessStripeEvent("checkout.session.completed", "evt_b", "c@d.com", "paid", 500))
	require.Len(t, repo.keys, 2)
	assert.Equal(t, entity.PlanMonthly, repo.keys[1].Plan)
}

func TestProcessStripeEvent_IgnoraEventosNoPagados(t *testing.T) {
	uc, repo, _ := newLicenseFixture()
	webhooks := access.NewWebhookUseCase(uc, nil, logger.Nop())

	require.NoError(t, webhooks.ProcessStripeEvent("invoice.created", "evt_x", "a@b.com", "paid", 1500))
	require.NoError(t, webhooks.ProcessStripeEvent("checkout.session.completed", "evt_y", "a@b.com", "unpaid", 1500))
	require.NoError(t, webhooks.ProcessStripeEvent("checkout.session.completed", "evt_z", "", "paid", 1500))

	assert.Empty(t, repo.keys, "eventos no confirmados o sin email no emiten claves")
}

func TestProcessMercadoPago_AprobadoEmiteClave(t *testing.T) {
	uc, repo, _ := newLicenseFixture()
	fetcher := &fakePaymentFetcher{payment: &access.PaymentInfo{
		ID: "pay_1", Status: "approved", PayerEmail: "mp@example.com", Amount: 120,
	}}
	webhooks := access.NewWebhookUseCase(uc, fetcher, logger.Nop())

	require.NoError(t, webhooks.ProcessMercadoPagoNotification(context.Background(), "pay_1"))
	require.Len(t, repo.keys, 1)
	assert.Equal(t, entity.PlanAnnual, repo.keys[0].Plan, "monto >= 100 compra el plan anual")
	assert.Equal(t, entity.PaymentSourceMercadoPago, repo.keys[0].PaymentSource)

	// Reenvío de la misma notificación: sin clave nueva.
	require.NoError(t, webhooks.ProcessMercadoPagoNotification(context.Background(), "pay_1"))
	assert.Len(t, repo.keys, 1)
}

func TestProcessMercadoPago_PendienteNoEmite(t *testing.T) {
	uc, repo, _ := newLicenseFixture()
	fetcher := &fakePaymentFetcher{payment: &access.PaymentInfo{
		ID: "pay_2", Status: "pending", PayerEmail: "mp@example.com", Amount: 50,
	}}
	webhooks := access.NewWebhookUseCase(uc, fetcher, logger.Nop())

	require.NoError(t, webhooks.ProcessMercadoPagoNotification(context.Background(), "pay_2"))
	assert.Empty(t, repo.keys)
}
