package usecase

import (
	"strings"

	"github.com/google/uuid"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(accountID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: customer.ID, Name: customer.Name, Email: customer.Email, Phone: customer.Phone}, nil
}

// CreateBulk crea clientes desde líneas "nombre,email,teléfono". Líneas sin
// nombre se ignoran. Devuelve cuántos se crearon.
func (uc *CustomerUseCase) CreateBulk(accountID, lines string) (int, error) {
	created := 0
	for _, fields := range parseBulkLines(lines) {
		customer := &entity.Customer{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Name:      fields[0],
			Email:     fields[1],
			Phone:     fields[2],
		}
		if err := uc.repo.Create(customer); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// List lista/busca clientes de la cuenta.
func (uc *CustomerUseCase) List(accountID, query string, limit, offset int) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(accountID, query, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.PartyResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone})
	}
	return out, nil
}

// SupplierUseCase casos de uso para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(accountID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: supplier.ID, Name: supplier.Name, Email: supplier.Email, Phone: supplier.Phone}, nil
}

// CreateBulk crea proveedores desde líneas "nombre,email,teléfono".
func (uc *SupplierUseCase) CreateBulk(accountID, lines string) (int, error) {
	created := 0
	for _, fields := range parseBulkLines(lines) {
		supplier := &entity.Supplier{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Name:      fields[0],
			Email:     fields[1],
			Phone:     fields[2],
		}
		if err := uc.repo.Create(supplier); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// List lista/busca proveedores de la cuenta.
func (uc *SupplierUseCase) List(accountID, query string, limit, offset int) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(accountID, query, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.PartyResponse{ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone})
	}
	return out, nil
}

// parseBulkLines separa "nombre,email,teléfono" por línea; siempre devuelve
// tres campos por registro, vacíos si faltan.
func parseBulkLines(lines string) [][3]string {
	var out [][3]string
	for _, line := range strings.Split(lines, "\n") {
		parts := strings.Split(line, ",")
		var fields [3]string
		for i := 0; i < len(parts) && i < 3; i++ {
			fields[i] = strings.TrimSpace(parts[i])
		}
		if fields[0] == "" {
			continue
		}
		out = append(out, fields)
	}
	return out
}
