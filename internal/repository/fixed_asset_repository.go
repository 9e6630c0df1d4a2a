package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// FixedAssetRepository provides data access methods for the fixed_asset table.
type FixedAssetRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFixedAssetRepository creates a new FixedAssetRepository with the provided database connection.
func NewFixedAssetRepository(db *sql.DB) *FixedAssetRepository {
	return &FixedAssetRepository{db: db}
}

// WithTx returns a new FixedAssetRepository scoped to the provided transaction.
func (r *FixedAssetRepository) WithTx(tx *sql.Tx) *FixedAssetRepository {
	return &FixedAssetRepository{db: r.db, tx: tx}
}

// GetFixedAssets retrieves a store's fixed assets in table order.
func (r *FixedAssetRepository) GetFixedAssets(ctx context.Context, storeID string) ([]model.FixedAsset, error) {
	rows, err := pick(r.db, r.tx).QueryContext(ctx,
		`SELECT name, current_value, category FROM fixed_asset WHERE store_id = ? ORDER BY position`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixed_asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.FixedAsset{}
	for rows.Next() {
		var a model.FixedAsset
		var category string
		if err := rows.Scan(&a.Name, &a.CurrentValue, &category); err != nil {
			return nil, fmt.Errorf("failed to scan fixed_asset table results: %w", err)
		}
		a.Category = model.ParseCategory(category, model.CategoryFixedAsset)
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed_asset table: %w", err)
	}
	return assets, nil
}

// ReplaceFixedAssets overwrites a store's fixed asset table.
func (r *FixedAssetRepository) ReplaceFixedAssets(ctx context.Context, storeID string, assets []model.FixedAsset) error {
	return withinTx(ctx, r.db, r.tx, func(q querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM fixed_asset WHERE store_id = ?`, storeID); err != nil {
			return fmt.Errorf("failed to clear fixed_asset table: %w", err)
		}
		for i, a := range assets {
			_, err := q.ExecContext(ctx,
				`INSERT INTO fixed_asset (id, store_id, position, name, current_value, category) VALUES (?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), storeID, i, a.Name, a.CurrentValue, string(a.Category),
			)
			if err != nil {
				return fmt.Errorf("failed to insert fixed asset %s: %w", a.Name, err)
			}
		}
		return nil
	})
}
