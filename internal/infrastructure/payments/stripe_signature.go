package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyStripeSignature valida el encabezado Stripe-Signature contra el
// payload crudo del webhook. El encabezado tiene la forma
// "t=...,v1=<hex>,..."; se compara el HMAC-SHA256 del cuerpo con cada parte
// v1 en tiempo constante.
func VerifyStripeSignature(payload []byte, header, secret string) bool {
	if header == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		value, ok := strings.CutPrefix(part, "v1=")
		if !ok {
			continue
		}
		got, err := hex.DecodeString(value)
		if err != nil {
			continue
		}
		if hmac.Equal(got, expected) {
			return true
		}
	}
	return false
}
