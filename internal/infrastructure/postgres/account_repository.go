package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una nueva cuenta. El email duplicado mapea a ErrDuplicate.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, name, is_admin, theme_color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Email, account.PasswordHash, account.Name,
		account.IsAdmin, account.ThemeColor, account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `
		SELECT id, email, password_hash, name, is_admin, theme_color, created_at
		FROM accounts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene una cuenta por email (único global).
func (r *AccountRepo) GetByEmail(email string) (*entity.Account, error) {
	query := `
		SELECT id, email, password_hash, name, is_admin, theme_color, created_at
		FROM accounts WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// List devuelve las cuentas más recientes; query filtra por nombre o email.
func (r *AccountRepo) List(query string, limit int) ([]*entity.Account, error) {
	sql := `
		SELECT id, email, password_hash, name, is_admin, theme_color, created_at
		FROM accounts
		WHERE ($1 = '' OR name ILIKE $2 OR email ILIKE $2)
		ORDER BY created_at DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), sql, query, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.IsAdmin, &a.ThemeColor, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

// Update persiste los campos editables de la cuenta. El email duplicado mapea
// a ErrDuplicate; id inexistente a ErrNotFound.
func (r *AccountRepo) Update(account *entity.Account) error {
	query := `
		UPDATE accounts
		SET email = $2, password_hash = $3, name = $4, is_admin = $5, theme_color = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		account.ID, account.Email, account.PasswordHash, account.Name,
		account.IsAdmin, account.ThemeColor,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) scanOne(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.IsAdmin, &a.ThemeColor, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}
