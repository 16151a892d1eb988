package usecase

import (
	"context"

	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// AccountPurger elimina datos de una cuenta en una sola transacción
// (implementado por el tx runner de postgres).
type AccountPurger interface {
	// ResetParties borra clientes y proveedores de la cuenta.
	ResetParties(ctx context.Context, accountID string) error
	// PurgeAccount borra la cuenta y todos sus datos asociados.
	PurgeAccount(ctx context.Context, accountID string) error
}

// AccountUseCase preferencias de la cuenta propia: tema de la interfaz y
// reinicio de clientes/proveedores.
type AccountUseCase struct {
	accountRepo repository.AccountRepository
	purger      AccountPurger
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(accountRepo repository.AccountRepository, purger AccountPurger) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo, purger: purger}
}

// GetSettings devuelve las preferencias actuales de la cuenta.
func (uc *AccountUseCase) GetSettings(accountID string) (*dto.SettingsResponse, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.SettingsResponse{
		Email:      account.Email,
		Name:       account.Name,
		ThemeColor: account.ThemeColor,
		IsAdmin:    account.IsAdmin,
	}, nil
}

// UpdateTheme cambia el color primario de la interfaz. Un color vacío vuelve
// al valor por defecto.
func (uc *AccountUseCase) UpdateTheme(accountID, color string) (*dto.SettingsResponse, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if color == "" {
		color = entity.DefaultThemeColor
	}
	account.ThemeColor = color
	if err := uc.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		Email:      account.Email,
		Name:       account.Name,
		ThemeColor: account.ThemeColor,
		IsAdmin:    account.IsAdmin,
	}, nil
}

// ResetParties elimina todos los clientes y proveedores de la cuenta.
func (uc *AccountUseCase) ResetParties(ctx context.Context, accountID string) error {
	return uc.purger.ResetParties(ctx, accountID)
}
