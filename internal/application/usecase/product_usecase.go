package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/invoteam/invo-api/internal/application/dto"
	"github.com/invoteam/invo-api/internal/domain"
	"github.com/invoteam/invo-api/internal/domain/entity"
	"github.com/invoteam/invo-api/internal/domain/repository"
	"github.com/invoteam/invo-api/pkg/logger"
)

// Evaluator hito post-creación de producto (best-effort).
type Evaluator interface {
	EvaluateAfterProductCreate(accountID string) error
}

// ProductUseCase CRUD de productos, búsqueda, listado agrupado por categoría
// y exportación CSV. El stock solo se fija aquí en la creación; después se
// mueve únicamente vía el motor de inventario.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	evaluator    Evaluator
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	evaluator Evaluator,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, evaluator: evaluator, log: log}
}

// Create crea un producto. El SKU duplicado dentro de la cuenta devuelve
// ErrDuplicate (constraint compuesto en la BD).
func (uc *ProductUseCase) Create(accountID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var categoryID *string
	categoryName := ""
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(accountID, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
		categoryID = &cat.ID
		categoryName = cat.Name
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		AccountID:    accountID,
		SKU:          in.SKU,
		Name:         in.Name,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		Price:        in.Price,
		Stock:        in.Stock,
		CreatedAt:    time.Now(),
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	if err := uc.evaluator.EvaluateAfterProductCreate(accountID); err != nil {
		uc.log.Warn().Err(err).Str("account_id", accountID).Msg("evaluación de logros de producto")
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID devuelve un producto de la cuenta.
func (uc *ProductUseCase) GetByID(accountID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update edita SKU, nombre, categoría y precio. El stock no se toca por aquí.
func (uc *ProductUseCase) Update(accountID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		if *in.SKU == "" {
			return nil, domain.ErrInvalidInput
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			product.CategoryID = nil
			product.CategoryName = ""
		} else {
			cat, err := uc.categoryRepo.GetByID(accountID, *in.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrNotFound
			}
			product.CategoryID = &cat.ID
			product.CategoryName = cat.Name
		}
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// List devuelve los productos agrupados por categoría ("Uncategorized" primero
// si hay productos sin categoría); con query hace búsqueda por nombre, SKU o
// categoría y devuelve un solo grupo de resultados.
func (uc *ProductUseCase) List(accountID, query string) ([]dto.ProductGroup, error) {
	if query != "" {
		found, err := uc.productRepo.Search(accountID, query)
		if err != nil {
			return nil, err
		}
		return []dto.ProductGroup{{Category: "Search Results", Items: toProductResponses(found)}}, nil
	}
	products, err := uc.productRepo.ListByAccount(accountID, 1000, 0)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]dto.ProductResponse)
	var uncategorized []dto.ProductResponse
	for _, p := range products {
		if p.CategoryID == nil {
			uncategorized = append(uncategorized, toProductResponse(p))
			continue
		}
		byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], toProductResponse(p))
	}
	var groups []dto.ProductGroup
	if len(uncategorized) > 0 {
		groups = append(groups, dto.ProductGroup{Category: "Uncategorized", Items: uncategorized})
	}
	for _, c := range categories {
		groups = append(groups, dto.ProductGroup{Category: c.Name, Items: byCategory[c.ID]})
	}
	return groups, nil
}

// ExportCSV exporta los productos de la cuenta como CSV UTF-8 con cabecera
// id,sku,name,category,price,stock, ordenados por nombre.
func (uc *ProductUseCase) ExportCSV(accountID string) ([]byte, error) {
	products, err := uc.productRepo.ListByAccount(accountID, 10000, 0)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "sku", "name", "category", "price", "stock"}); err != nil {
		return nil, fmt.Errorf("escribir cabecera csv: %w", err)
	}
	for _, p := range products {
		record := []string{p.ID, p.SKU, p.Name, p.CategoryName, p.Price.String(), strconv.Itoa(p.Stock)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("escribir fila csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("volcar csv: %w", err)
	}
	return buf.Bytes(), nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.CategoryName,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}
