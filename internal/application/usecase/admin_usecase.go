package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// AdminUseCase administración de cuentas: listado, edición, eliminación y
// reinicio de clientes/proveedores de cualquier cuenta.
type AdminUseCase struct {
	accountRepo repository.AccountRepository
	purger      AccountPurger
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(accountRepo repository.AccountRepository, purger AccountPurger) *AdminUseCase {
	return &AdminUseCase{accountRepo: accountRepo, purger: purger}
}

// ListAccounts lista las cuentas más recientes, con filtro opcional por
// nombre o email.
func (uc *AdminUseCase) ListAccounts(query string, limit int) ([]dto.AdminAccountResponse, error) {
	accounts, err := uc.accountRepo.List(strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.AdminAccountResponse{
			ID:        a.ID,
			Email:     a.Email,
			Name:      a.Name,
			IsAdmin:   a.IsAdmin,
			CreatedAt: a.CreatedAt,
		})
	}
	return out, nil
}

// UpdateAccount edita nombre, email y rol de una cuenta. Un password no vacío
// se rehashea; vacío conserva el actual.
func (uc *AdminUseCase) UpdateAccount(id string, in dto.UpdateAccountRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return domain.ErrInvalidInput
	}
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	account.Name = strings.TrimSpace(in.Name)
	account.Email = email
	account.IsAdmin = in.IsAdmin
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		account.PasswordHash = string(hash)
	}
	return uc.accountRepo.Update(account)
}

// DeleteAccount elimina la cuenta y todos sus datos.
func (uc *AdminUseCase) DeleteAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	return uc.purger.PurgeAccount(ctx, id)
}

// ResetParties elimina clientes y proveedores de la cuenta indicada.
func (uc *AdminUseCase) ResetParties(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	return uc.purger.ResetParties(ctx, id)
}
