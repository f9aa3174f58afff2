package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"product-showcase/data"
	"product-showcase/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// ProductRepository defines the read path of the product store
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type jsonProductRepository struct {
	products []domain.Product
	byID     map[int]int
}

// NewJSONProductRepository decodes a JSON array of products. Every record is
// validated and ids must be unique; file order is kept.
func NewJSONProductRepository(raw []byte) (ProductRepository, error) {
	products, err := DecodeProducts(raw)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	return &jsonProductRepository{products: products, byID: byID}, nil
}

// LoadJSONProductRepository reads the store file at path, or the embedded
// snapshot when path is empty
func LoadJSONProductRepository(path string) (ProductRepository, error) {
	if path == "" {
		return NewJSONProductRepository(data.Products)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read product file: %w", err)
	}

	return NewJSONProductRepository(raw)
}

// DecodeProducts parses and validates a product snapshot
func DecodeProducts(raw []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// List returns a copy of all products in store order
func (r *jsonProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// FindByID retrieves a product by ID
func (r *jsonProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	product := r.products[i]
	return &product, nil
}
