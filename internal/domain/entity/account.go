package entity

import "time"

// Roles de cuenta.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// DefaultThemeColor color primario de la interfaz cuando la cuenta no eligió uno.
const DefaultThemeColor = "#3b82f6"

// Account representa una cuenta (tenant). Todas las entidades del sistema
// pertenecen a exactamente una cuenta; el aislamiento entre cuentas es total.
type Account struct {
	ID           string
	Email        string // único global
	PasswordHash string
	Name         string
	IsAdmin      bool
	ThemeColor   string
	CreatedAt    time.Time
}

// Role devuelve el rol efectivo para los claims JWT.
func (a *Account) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleOwner
}
