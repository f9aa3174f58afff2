package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"product-showcase/internal/domain"
)

type postgresProductRepository struct {
	db *sql.DB
}

// NewPostgresProductRepository creates a product store backed by the products table
func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

// List retrieves all products in seed order
func (r *postgresProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, image, category, description, rating
		FROM products
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *postgresProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, name, price, image, category, description, rating
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product     domain.Product
		description sql.NullString
		rating      sql.NullFloat64
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Image,
		&product.Category,
		&description,
		&rating,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	if rating.Valid {
		r := rating.Float64
		product.Rating = &r
	}

	return &product, nil
}
