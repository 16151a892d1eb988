package access

import (
	"time"

	"github.com/invoteam/invo-api/internal/domain/repository"
)

// Gate evalúa si una cuenta tiene acceso pago vigente: existe una clave
// canjeada por la cuenta, con estado activo y vencimiento nulo o futuro.
// Es el predicado que protege todos los endpoints de mutación y listado del
// núcleo (productos, órdenes, inventario, clientes, proveedores).
type Gate struct {
	licenseRepo repository.LicenseKeyRepository
}

// NewGate construye el gate.
func NewGate(licenseRepo repository.LicenseKeyRepository) *Gate {
	return &Gate{licenseRepo: licenseRepo}
}

// HasActiveAccess devuelve true si la cuenta tiene acceso pago vigente.
func (g *Gate) HasActiveAccess(accountID string) (bool, error) {
	if accountID == "" {
		return false, nil
	}
	return g.licenseRepo.HasActiveForAccount(accountID, time.Now())
}
