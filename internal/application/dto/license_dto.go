package dto

import "time"

// RedeemKeyRequest entrada para canjear una clave de licencia.
type RedeemKeyRequest struct {
	Code string `json:"code"`
}

// RetrieveKeyRequest entrada para recuperar la clave emitida a un email.
type RetrieveKeyRequest struct {
	Email string `json:"email"`
}

// IssueKeyRequest entrada admin para emitir una clave manual.
type IssueKeyRequest struct {
	Plan string `json:"plan"`
}

// LicenseKeyResponse salida de una clave de licencia.
type LicenseKeyResponse struct {
	Code      string     `json:"code"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
	Redeemed  bool       `json:"redeemed"`
	CreatedAt time.Time  `json:"created_at"`
}

// AccessResponse estado de acceso pago de la cuenta.
type AccessResponse struct {
	Active bool `json:"active"`
}
