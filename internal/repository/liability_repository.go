package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// LiabilityRepository provides data access methods for the liability table.
type LiabilityRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewLiabilityRepository creates a new LiabilityRepository with the provided database connection.
func NewLiabilityRepository(db *sql.DB) *LiabilityRepository {
	return &LiabilityRepository{db: db}
}

// WithTx returns a new LiabilityRepository scoped to the provided transaction.
func (r *LiabilityRepository) WithTx(tx *sql.Tx) *LiabilityRepository {
	return &LiabilityRepository{db: r.db, tx: tx}
}

// GetLiabilities retrieves a store's liabilities in table order.
func (r *LiabilityRepository) GetLiabilities(ctx context.Context, storeID string) ([]model.Liability, error) {
	rows, err := pick(r.db, r.tx).QueryContext(ctx,
		`SELECT name, amount, monthly_payment FROM liability WHERE store_id = ? ORDER BY position`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query liability table: %w", err)
	}
	defer rows.Close()

	liabilities := []model.Liability{}
	for rows.Next() {
		var l model.Liability
		if err := rows.Scan(&l.Name, &l.Amount, &l.MonthlyPayment); err != nil {
			return nil, fmt.Errorf("failed to scan liability table results: %w", err)
		}
		liabilities = append(liabilities, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liability table: %w", err)
	}
	return liabilities, nil
}

// ReplaceLiabilities overwrites a store's liability table.
func (r *LiabilityRepository) ReplaceLiabilities(ctx context.Context, storeID string, liabilities []model.Liability) error {
	return withinTx(ctx, r.db, r.tx, func(q querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM liability WHERE store_id = ?`, storeID); err != nil {
			return fmt.Errorf("failed to clear liability table: %w", err)
		}
		for i, l := range liabilities {
			_, err := q.ExecContext(ctx,
				`INSERT INTO liability (id, store_id, position, name, amount, monthly_payment) VALUES (?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), storeID, i, l.Name, l.Amount, l.MonthlyPayment,
			)
			if err != nil {
				return fmt.Errorf("failed to insert liability %s: %w", l.Name, err)
			}
		}
		return nil
	})
}
