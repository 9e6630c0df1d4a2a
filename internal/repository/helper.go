package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// dateLayout is the storage format of calendar dates.
const dateLayout = "2006-01-02"

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// pick returns the active transaction if one is set, otherwise the database connection.
func pick(db *sql.DB, tx *sql.Tx) querier {
	if tx != nil {
		return tx
	}
	return db
}

// withinTx runs fn inside tx when one is set, or inside a new transaction that
// is committed when fn succeeds.
func withinTx(ctx context.Context, db *sql.DB, tx *sql.Tx, fn func(q querier) error) error {
	if tx != nil {
		return fn(tx)
	}

	own, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = own.Rollback() }()

	if err := fn(own); err != nil {
		return err
	}
	if err := own.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
