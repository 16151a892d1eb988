package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)
var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, account_id, name, email, phone)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.AccountID, customer.Name, customer.Email, customer.Phone,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(accountID, id string) (*entity.Customer, error) {
	query := `
		SELECT id, account_id, name, email, phone
		FROM customers WHERE id = $1 AND account_id = $2`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id, accountID).Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Email, &c.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List busca por nombre/email/teléfono (case-insensitive) cuando query no
// está vacío; ordena por nombre.
func (r *CustomerRepo) List(accountID, query string, limit, offset int) ([]*entity.Customer, error) {
	sql := `
		SELECT id, account_id, name, email, phone
		FROM customers
		WHERE account_id = $1 AND ($2 = '' OR name ILIKE $3 OR email ILIKE $3 OR phone ILIKE $3)
		ORDER BY name
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), sql, accountID, query, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, account_id, name, email, phone)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.AccountID, supplier.Name, supplier.Email, supplier.Phone,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(accountID, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, account_id, name, email, phone
		FROM suppliers WHERE id = $1 AND account_id = $2`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id, accountID).Scan(
		&s.ID, &s.AccountID, &s.Name, &s.Email, &s.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(accountID, query string, limit, offset int) ([]*entity.Supplier, error) {
	sql := `
		SELECT id, account_id, name, email, phone
		FROM suppliers
		WHERE account_id = $1 AND ($2 = '' OR name ILIKE $3 OR email ILIKE $3 OR phone ILIKE $3)
		ORDER BY name
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), sql, accountID, query, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.AccountID, &s.Name, &s.Email, &s.Phone); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}
