package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
	"github.com/invoteam/invo-api/pkg/jwt"
)

// JWTConfig parámetros de firma para los tokens emitidos.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro e inicio de sesión de cuentas. El resto del sistema
// solo consume la identidad resultante (account id en los claims).
type AuthUseCase struct {
	accountRepo repository.AccountRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(accountRepo repository.AccountRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{accountRepo: accountRepo, jwtCfg: jwtCfg}
}

// Register crea la cuenta con el password hasheado (bcrypt) y devuelve un
// token de sesión.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		ThemeColor:   entity.DefaultThemeColor,
		CreatedAt:    time.Now(),
	}
	if err := uc.accountRepo.Create(account); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return uc.tokenResponse(account)
}

// Login valida credenciales y devuelve un token de sesión. Email desconocido
// y password incorrecto responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	account, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.tokenResponse(account)
}

func (uc *AuthUseCase) tokenResponse(account *entity.Account) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.Role(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		AccountID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role(),
	}, nil
}
