package license

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Alfabeto sin caracteres ambiguos (sin 0/O, 1/I).
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 16

// NewCode genera un código de licencia aleatorio en formato
// XXXX-XXXX-XXXX-XXXX usando crypto/rand.
func NewCode() (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	raw := make([]byte, codeLength)
	for i := range raw {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar código: %w", err)
		}
		raw[i] = alphabet[n.Int64()]
	}
	var groups []string
	for i := 0; i < codeLength; i += 4 {
		groups = append(groups, string(raw[i:i+4]))
	}
	return strings.Join(groups, "-"), nil
}

// Normalize lleva un código ingresado por el usuario a la forma canónica
// (mayúsculas, sin espacios).
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
