package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// HistoryRepository provides data access methods for the append-only history table.
type HistoryRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHistoryRepository creates a new HistoryRepository with the provided database connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// WithTx returns a new HistoryRepository scoped to the provided transaction.
func (r *HistoryRepository) WithTx(tx *sql.Tx) *HistoryRepository {
	return &HistoryRepository{db: r.db, tx: tx}
}

// GetHistory retrieves a store's history points, oldest first.
func (r *HistoryRepository) GetHistory(ctx context.Context, storeID string) ([]model.HistoryPoint, error) {
	query := `
        SELECT date, net_worth, total_assets, total_liabilities, monthly_payment
        FROM history
        WHERE store_id = ?
        ORDER BY date
    `
	rows, err := pick(r.db, r.tx).QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history table: %w", err)
	}
	defer rows.Close()

	points := []model.HistoryPoint{}
	for rows.Next() {
		var p model.HistoryPoint
		var date string
		if err := rows.Scan(&date, &p.NetWorth, &p.TotalAssets, &p.TotalLiabilities, &p.MonthlyPayment); err != nil {
			return nil, fmt.Errorf("failed to scan history table results: %w", err)
		}
		if p.Date, err = ParseTime(date); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history table: %w", err)
	}
	return points, nil
}

// InsertHistoryPoint appends p unless the store already has a point for that
// date. The check and the insert are one statement, so concurrent writers for
// the same day leave exactly one row. It reports whether a row was written.
func (r *HistoryRepository) InsertHistoryPoint(ctx context.Context, storeID string, p model.HistoryPoint) (bool, error) {
	result, err := pick(r.db, r.tx).ExecContext(ctx, `
        INSERT INTO history (id, store_id, date, net_worth, total_assets, total_liabilities, monthly_payment)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(store_id, date) DO NOTHING
    `,
		uuid.New().String(), storeID, p.Date.UTC().Format(dateLayout),
		p.NetWorth, p.TotalAssets, p.TotalLiabilities, p.MonthlyPayment,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert history point: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
