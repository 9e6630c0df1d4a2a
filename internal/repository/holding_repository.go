package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
// Each store has two holdings tables, one per market, kept in user order.
type HoldingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// WithTx returns a new HoldingRepository scoped to the provided transaction.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{db: r.db, tx: tx}
}

// GetHoldings retrieves the holdings of one market in table order.
// Returns an empty slice if the table is empty.
func (r *HoldingRepository) GetHoldings(ctx context.Context, storeID string, market model.Market) ([]model.Holding, error) {
	query := `
        SELECT symbol, display_name, shares, category, override_price, market_price
        FROM holding
        WHERE store_id = ? AND market = ?
        ORDER BY position
    `
	rows, err := pick(r.db, r.tx).QueryContext(ctx, query, storeID, string(market))
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		var h model.Holding
		var category string
		if err := rows.Scan(&h.Symbol, &h.DisplayName, &h.Shares, &category, &h.OverridePrice, &h.MarketPrice); err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		h.Category = model.ParseCategory(category, market.DefaultCategory())
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}
	return holdings, nil
}

// ReplaceHoldings overwrites the holdings table of one market with holdings,
// preserving their order. The table is replaced as a whole or not at all.
func (r *HoldingRepository) ReplaceHoldings(ctx context.Context, storeID string, market model.Market, holdings []model.Holding) error {
	return withinTx(ctx, r.db, r.tx, func(q querier) error {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM holding WHERE store_id = ? AND market = ?`, storeID, string(market)); err != nil {
			return fmt.Errorf("failed to clear holding table: %w", err)
		}

		query := `
            INSERT INTO holding (id, store_id, market, position, symbol, display_name, shares, category, override_price, market_price)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `
		for i, h := range holdings {
			_, err := q.ExecContext(ctx, query,
				uuid.New().String(), storeID, string(market), i,
				h.Symbol, h.DisplayName, h.Shares, string(h.Category), h.OverridePrice, h.MarketPrice,
			)
			if err != nil {
				if strings.Contains(err.Error(), "UNIQUE constraint failed") {
					return fmt.Errorf("%w: %s", apperrors.ErrDuplicateSymbol, h.Symbol)
				}
				return fmt.Errorf("failed to insert holding %s: %w", h.Symbol, err)
			}
		}
		return nil
	})
}

// DeleteHolding removes one holding by symbol.
func (r *HoldingRepository) DeleteHolding(ctx context.Context, storeID string, market model.Market, symbol string) error {
	result, err := pick(r.db, r.tx).ExecContext(ctx,
		`DELETE FROM holding WHERE store_id = ? AND market = ? AND symbol = ?`,
		storeID, string(market), symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrHoldingNotFound
	}
	return nil
}
