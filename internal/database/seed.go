package database

import (
	"context"
	"database/sql"
	"fmt"

	"product-showcase/internal/domain"

	"go.uber.org/zap"
)

// SeedProducts makes the products table equal to a snapshot in one
// transaction: rows are upserted with their snapshot index as position and
// rows missing from the snapshot are deleted.
func SeedProducts(ctx context.Context, db *sql.DB, products []domain.Product, logger *zap.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (id, position, name, price, image, category, description, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			position = EXCLUDED.position,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			image = EXCLUDED.image,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			rating = EXCLUDED.rating
	`

	keep := make(map[int]struct{}, len(products))
	for i, p := range products {
		var description sql.NullString
		if p.Description != "" {
			description = sql.NullString{String: p.Description, Valid: true}
		}
		var rating sql.NullFloat64
		if p.Rating != nil {
			rating = sql.NullFloat64{Float64: *p.Rating, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, query,
			p.ID, i, p.Name, p.Price, p.Image, p.Category, description, rating,
		); err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.ID, err)
		}
		keep[p.ID] = struct{}{}
	}

	stale, err := staleProductIDs(ctx, tx, keep)
	if err != nil {
		return err
	}
	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to remove product %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Info("Product seed applied",
		zap.Int("snapshot", len(products)),
		zap.Int("removed", len(stale)),
	)
	return nil
}

func staleProductIDs(ctx context.Context, tx *sql.Tx, keep map[int]struct{}) ([]int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to list seeded products: %w", err)
	}
	defer rows.Close()

	var stale []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product ids: %w", err)
	}
	return stale, nil
}
