package access

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
	"github.com/invoteam/invo-api/pkg/license"
)

// Duración de acceso por plan.
const (
	monthlyDuration = 30 * 24 * time.Hour
	annualDuration  = 365 * 24 * time.Hour
)

// LicenseUseCase emisión, recuperación y canje de claves de licencia.
type LicenseUseCase struct {
	licenseRepo repository.LicenseKeyRepository
	accountRepo repository.AccountRepository
}

// NewLicenseUseCase construye el caso de uso.
func NewLicenseUseCase(licenseRepo repository.LicenseKeyRepository, accountRepo repository.AccountRepository) *LicenseUseCase {
	return &LicenseUseCase{licenseRepo: licenseRepo, accountRepo: accountRepo}
}

func normalizePlan(plan string) string {
	switch plan {
	case entity.PlanAnnual, "yearly":
		return entity.PlanAnnual
	default:
		return entity.PlanMonthly
	}
}

func planDuration(plan string) time.Duration {
	if plan == entity.PlanAnnual {
		return annualDuration
	}
	return monthlyDuration
}

// IssueKey emite una clave manual (flujo admin) con vencimiento según el plan.
func (uc *LicenseUseCase) IssueKey(plan string) (*entity.LicenseKey, error) {
	plan = normalizePlan(plan)
	code, err := license.NewCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	exp := now.Add(planDuration(plan)).Truncate(time.Second)
	key := &entity.LicenseKey{
		ID:        uuid.New().String(),
		Code:      code,
		Plan:      plan,
		ExpiresAt: &exp,
		Status:    entity.LicenseStatusActive,
		CreatedAt: now,
	}
	if err := uc.licenseRepo.Create(key); err != nil {
		return nil, err
	}
	return key, nil
}

// IssuePaidKey emite la clave que corresponde a un pago confirmado. Es
// idempotente sobre (source, eventID): el reenvío del mismo evento de webhook
// devuelve la clave ya emitida en vez de crear una segunda. Si ya existe una
// cuenta con el email del pagador, la clave queda canjeada de inmediato.
func (uc *LicenseUseCase) IssuePaidKey(email, plan, source, eventID string) (*entity.LicenseKey, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	if eventID != "" {
		existing, err := uc.licenseRepo.GetByPaymentEvent(source, eventID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	plan = normalizePlan(plan)
	code, err := license.NewCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	exp := now.Add(planDuration(plan)).Truncate(time.Second)
	currency := "BRL"
	if source == entity.PaymentSourceStripe {
		currency = "USD"
	}
	key := &entity.LicenseKey{
		ID:             uuid.New().String(),
		Code:           code,
		Plan:           plan,
		IssuedToEmail:  email,
		ExpiresAt:      &exp,
		PaymentSource:  source,
		PaymentEventID: eventID,
		Status:         entity.LicenseStatusActive,
		Currency:       currency,
		CreatedAt:      now,
	}

	account, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if account != nil {
		key.RedeemedByAccount = &account.ID
		redeemedAt := now
		key.RedeemedAt = &redeemedAt
	}

	if err := uc.licenseRepo.Create(key); err != nil {
		if err == domain.ErrDuplicate && eventID != "" {
			// Carrera entre dos entregas del mismo evento: gana la primera.
			return uc.licenseRepo.GetByPaymentEvent(source, eventID)
		}
		return nil, err
	}
	return key, nil
}

// RedeemKey canjea una clave para la cuenta. Solo claves sin canjear y sin
// vencer son canjeables.
func (uc *LicenseUseCase) RedeemKey(accountID, code string) error {
	code = license.Normalize(code)
	if code == "" {
		return domain.ErrInvalidInput
	}
	key, err := uc.licenseRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if key == nil || !key.Redeemable(time.Now()) {
		return domain.ErrInvalidLicenseKey
	}
	return uc.licenseRepo.MarkRedeemed(key.ID, accountID, time.Now())
}

// RetrieveKeyByEmail devuelve la clave sin canjear más reciente emitida a un
// email (flujo "¿ya pagaste?").
func (uc *LicenseUseCase) RetrieveKeyByEmail(email string) (*dto.LicenseKeyResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	key, err := uc.licenseRepo.LatestUnredeemedByEmail(email)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, domain.ErrNotFound
	}
	resp := toKeyResponse(key)
	return &resp, nil
}

// CurrentKey devuelve la última clave canjeada por la cuenta (vista settings).
func (uc *LicenseUseCase) CurrentKey(accountID string) (*dto.LicenseKeyResponse, error) {
	key, err := uc.licenseRepo.LatestRedeemedByAccount(accountID)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, domain.ErrNotFound
	}
	resp := toKeyResponse(key)
	return &resp, nil
}

// ListKeys lista las últimas claves emitidas (flujo admin).
func (uc *LicenseUseCase) ListKeys(limit int) ([]dto.LicenseKeyResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.licenseRepo.List(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LicenseKeyResponse, 0, len(list))
	for _, k := range list {
		out = append(out, toKeyResponse(k))
	}
	return out, nil
}

func toKeyResponse(k *entity.LicenseKey) dto.LicenseKeyResponse {
	return dto.LicenseKeyResponse{
		Code:      k.Code,
		Plan:      k.Plan,
		Status:    k.Status,
		ExpiresAt: k.ExpiresAt,
		Redeemed:  k.RedeemedByAccount != nil,
		CreatedAt: k.CreatedAt,
	}
}
