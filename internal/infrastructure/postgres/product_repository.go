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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.account_id, p.sku, p.name, p.category_id, COALESCE(c.name, ''), p.price, p.stock, p.created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). El nombre de categoría se resuelve por JOIN en
// lectura; no se persiste en la fila del producto.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU duplicado en la cuenta mapea a ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, account_id, sku, name, category_id, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.AccountID, product.SKU, product.Name,
		product.CategoryID, product.Price, product.Stock, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro de la cuenta.
func (r *ProductRepo) GetByID(accountID, id string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.account_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, accountID))
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción; bloquea escritores
// concurrentes sobre el mismo producto hasta el commit.
func (r *ProductRepo) GetForUpdate(accountID, id string) (*entity.Product, error) {
	query := `
		SELECT id, account_id, sku, name, category_id, price, stock, created_at
		FROM products
		WHERE id = $1 AND account_id = $2
		FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id, accountID).Scan(
		&p.ID, &p.AccountID, &p.SKU, &p.Name, &p.CategoryID, &p.Price, &p.Stock, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return &p, nil
}

// GetBySKU obtiene un producto por SKU dentro de la cuenta.
func (r *ProductRepo) GetBySKU(accountID, sku string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.sku = $1 AND p.account_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku, accountID))
}

// Update actualiza los campos editables del producto. El stock NO se toca
// aquí: solo lo escribe el motor de inventario vía UpdateStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $1, name = $2, category_id = $3, price = $4
		WHERE id = $5 AND account_id = $6`
	tag, err := r.q.Exec(context.Background(), query,
		product.SKU, product.Name, product.CategoryID, product.Price,
		product.ID, product.AccountID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe la cantidad en bodega ya calculada por el motor de
// inventario. No hace aritmética: el caller debe haber bloqueado la fila.
func (r *ProductRepo) UpdateStock(accountID, id string, stock int) error {
	query := `UPDATE products SET stock = $1 WHERE id = $2 AND account_id = $3`
	tag, err := r.q.Exec(context.Background(), query, stock, id, accountID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByAccount lista productos de la cuenta ordenados por nombre.
func (r *ProductRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.account_id = $1
		ORDER BY p.name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Search busca por nombre, SKU o nombre de categoría (case-insensitive,
// substring).
func (r *ProductRepo) Search(accountID, query string) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.account_id = $1 AND (p.name ILIKE $2 OR p.sku ILIKE $2 OR c.name ILIKE $2)
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), sql, accountID, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListLowStock lista productos con stock bajo el umbral, los más bajos primero.
func (r *ProductRepo) ListLowStock(accountID string, threshold, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.account_id = $1 AND p.stock < $2
		ORDER BY p.stock ASC, p.name
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, accountID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// CountByAccount cuenta los productos de la cuenta.
func (r *ProductRepo) CountByAccount(accountID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE account_id = $1`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStock cuenta los productos con stock bajo el umbral.
func (r *ProductRepo) CountLowStock(accountID string, threshold int) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE account_id = $1 AND stock < $2`,
		accountID, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.AccountID, &p.SKU, &p.Name, &p.CategoryID, &p.CategoryName, &p.Price, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.AccountID, &p.SKU, &p.Name, &p.CategoryID, &p.CategoryName, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
