package license_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoteam/invo-api/pkg/license"
)

func TestNewCode_Formato(t *testing.T) {
	code, err := license.NewCode()
	require.NoError(t, err)

	groups := strings.Split(code, "-")
	require.Len(t, groups, 4, "el código debe tener 4 grupos separados por guion")
	for _, g := range groups {
		assert.Len(t, g, 4)
	}
}

func TestNewCode_SinCaracteresAmbiguos(t *testing.T) {
	// Varias muestras para cubrir el alfabeto con alta probabilidad.
	for i := 0; i < 50; i++ {
		code, err := license.NewCode()
		require.NoError(t, err)
		assert.NotContainsf(t, code, "0", "código %s", code)
		assert.NotContainsf(t, code, "O", "código %s", code)
		assert.NotContainsf(t, code, "1", "código %s", code)
		assert.NotContainsf(t, code, "I", "código %s", code)
	}
}

func TestNewCode_NoRepite(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := license.NewCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "códigos consecutivos no deben repetirse")
		seen[code] = true
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ABCD-EFGH-JKLM-NPQR", license.Normalize("  abcd-efgh-jklm-npqr "))
	assert.Equal(t, "ABCD", license.Normalize("ABCD"))
}
