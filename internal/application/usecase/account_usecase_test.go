package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoteam/invo-api/internal/application/usecase"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
)

func newAccountFixture(accounts ...*entity.Account) (*usecase.AccountUseCase, *accRepo, *spyPurger) {
	repo := &accRepo{accounts: accounts}
	purger := &spyPurger{}
	return usecase.NewAccountUseCase(repo, purger), repo, purger
}

// ──────────────────────────────────────────────────────────────────────────────
// Preferencias
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSettings_DevuelveLasPreferencias(t *testing.T) {
	acc := testAccount("a1", "ana@tienda.com", "Ana")
	acc.ThemeColor = "#ff0000"
	uc, _, _ := newAccountFixture(acc)

	out, err := uc.GetSettings("a1")
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.com", out.Email)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "#ff0000", out.ThemeColor)

	_, err = uc.GetSettings("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTheme_PersisteElColor(t *testing.T) {
	uc, repo, _ := newAccountFixture(testAccount("a1", "ana@tienda.com", "Ana"))

	out, err := uc.UpdateTheme("a1", "#22c55e")
	require.NoError(t, err)
	assert.Equal(t, "#22c55e", out.ThemeColor)

	updated, _ := repo.GetByID("a1")
	assert.Equal(t, "#22c55e", updated.ThemeColor)
}

func TestUpdateTheme_ColorVacioVuelveAlPorDefecto(t *testing.T) {
	acc := testAccount("a1", "ana@tienda.com", "Ana")
	acc.ThemeColor = "#ff0000"
	uc, repo, _ := newAccountFixture(acc)

	out, err := uc.UpdateTheme("a1", "")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultThemeColor, out.ThemeColor)

	updated, _ := repo.GetByID("a1")
	assert.Equal(t, entity.DefaultThemeColor, updated.ThemeColor)
}

func TestUpdateTheme_CuentaInexistente(t *testing.T) {
	uc, _, _ := newAccountFixture()

	_, err := uc.UpdateTheme("nope", "#22c55e")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reinicio de clientes y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestResetParties_DelegaEnElPurgerConLaCuentaPropia(t *testing.T) {
	uc, _, purger := newAccountFixture(testAccount("a1", "ana@tienda.com", "Ana"))

	require.NoError(t, uc.ResetParties(context.Background(), "a1"))
	assert.Equal(t, []string{"a1"}, purger.reset)
	assert.Empty(t, purger.purged, "reiniciar terceros nunca purga la cuenta")
}
