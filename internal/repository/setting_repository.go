package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// SettingRepository provides data access methods for the setting table, a
// key/value store holding one Settings record per store.
type SettingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// WithTx returns a new SettingRepository scoped to the provided transaction.
func (r *SettingRepository) WithTx(tx *sql.Tx) *SettingRepository {
	return &SettingRepository{db: r.db, tx: tx}
}

// GetSettings retrieves a store's settings. Keys that are absent or do not
// parse keep their default value.
func (r *SettingRepository) GetSettings(ctx context.Context, storeID string) (model.Settings, error) {
	rows, err := pick(r.db, r.tx).QueryContext(ctx,
		`SELECT key, value FROM setting WHERE store_id = ?`, storeID)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to query setting table: %w", err)
	}
	defer rows.Close()

	s := model.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return model.Settings{}, fmt.Errorf("failed to scan setting table results: %w", err)
		}
		switch key {
		case model.SettingExpense:
			s.Expense = parseFloatOr(value, s.Expense)
		case model.SettingAge:
			if v, err := strconv.Atoi(value); err == nil {
				s.Age = v
			}
		case model.SettingSavings:
			s.Savings = parseFloatOr(value, s.Savings)
		case model.SettingReturnRate:
			s.ReturnRate = parseFloatOr(value, s.ReturnRate)
		}
	}
	if err := rows.Err(); err != nil {
		return model.Settings{}, fmt.Errorf("error iterating setting table: %w", err)
	}
	return s, nil
}

// SaveSettings overwrites every settings key of a store.
func (r *SettingRepository) SaveSettings(ctx context.Context, storeID string, s model.Settings) error {
	values := []struct{ key, value string }{
		{model.SettingExpense, strconv.FormatFloat(s.Expense, 'f', -1, 64)},
		{model.SettingAge, strconv.Itoa(s.Age)},
		{model.SettingSavings, strconv.FormatFloat(s.Savings, 'f', -1, 64)},
		{model.SettingReturnRate, strconv.FormatFloat(s.ReturnRate, 'f', -1, 64)},
	}

	return withinTx(ctx, r.db, r.tx, func(q querier) error {
		for _, kv := range values {
			_, err := q.ExecContext(ctx, `
                INSERT INTO setting (store_id, key, value) VALUES (?, ?, ?)
                ON CONFLICT(store_id, key) DO UPDATE SET value = excluded.value
            `, storeID, kv.key, kv.value)
			if err != nil {
				return fmt.Errorf("failed to save setting %s: %w", kv.key, err)
			}
		}
		return nil
	})
}

func parseFloatOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
