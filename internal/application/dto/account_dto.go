package dto

import "time"

// UpdateSettingsRequest entrada para actualizar las preferencias de la cuenta.
type UpdateSettingsRequest struct {
	ThemeColor string `json:"theme_color"`
}

// SettingsResponse preferencias y datos básicos de la cuenta.
type SettingsResponse struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	ThemeColor string `json:"theme_color"`
	IsAdmin    bool   `json:"is_admin"`
}

// AdminAccountResponse fila del listado de cuentas para administración.
type AdminAccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateAccountRequest entrada de edición administrativa de una cuenta.
// Password vacío conserva el hash actual.
type UpdateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}
