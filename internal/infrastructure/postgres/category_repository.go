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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría. Nombre duplicado en la cuenta mapea a ErrDuplicate.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, account_id, name, description)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.AccountID, category.Name, category.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID dentro de la cuenta.
func (r *CategoryRepo) GetByID(accountID, id string) (*entity.Category, error) {
	query := `
		SELECT id, account_id, name, description
		FROM categories WHERE id = $1 AND account_id = $2`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id, accountID).Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListByAccount lista las categorías de la cuenta ordenadas por nombre.
func (r *CategoryRepo) ListByAccount(accountID string) ([]*entity.Category, error) {
	query := `
		SELECT id, account_id, name, description
		FROM categories WHERE account_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
