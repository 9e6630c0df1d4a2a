package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// StoreRepository provides data access methods for the store and users tables.
type StoreRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewStoreRepository creates a new StoreRepository with the provided database connection.
func NewStoreRepository(db *sql.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// WithTx returns a new StoreRepository scoped to the provided transaction.
func (r *StoreRepository) WithTx(tx *sql.Tx) *StoreRepository {
	return &StoreRepository{db: r.db, tx: tx}
}

// CreateStore inserts a new store and returns it.
func (r *StoreRepository) CreateStore(ctx context.Context, name string) (model.Store, error) {
	s := model.Store{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := pick(r.db, r.tx).ExecContext(ctx,
		`INSERT INTO store (id, name, created_at) VALUES (?, ?, ?)`,
		s.ID, s.Name, s.CreatedAt,
	)
	if err != nil {
		return model.Store{}, fmt.Errorf("failed to insert store: %w", err)
	}
	return s, nil
}

// GetStore retrieves a store by id. A missing store is reported as
// apperrors.ErrStoreUnreachable: the user it belongs to has no data to work on.
func (r *StoreRepository) GetStore(ctx context.Context, storeID string) (model.Store, error) {
	var s model.Store
	err := pick(r.db, r.tx).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM store WHERE id = ?`, storeID,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Store{}, fmt.Errorf("%w: store %s", apperrors.ErrStoreUnreachable, storeID)
	}
	if err != nil {
		return model.Store{}, fmt.Errorf("failed to query store: %w", err)
	}
	return s, nil
}

// ListStores retrieves every store, oldest first.
func (r *StoreRepository) ListStores(ctx context.Context) ([]model.Store, error) {
	rows, err := pick(r.db, r.tx).QueryContext(ctx,
		`SELECT id, name, created_at FROM store ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query store table: %w", err)
	}
	defer rows.Close()

	stores := []model.Store{}
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan store table results: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating store table: %w", err)
	}
	return stores, nil
}

// CreateUser inserts a user mapped to an existing store.
func (r *StoreRepository) CreateUser(ctx context.Context, username, passwordHash, storeID string) (model.User, error) {
	u := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		StoreID:      storeID,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := pick(r.db, r.tx).ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, store_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.StoreID, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.User{}, apperrors.ErrUserExists
		}
		return model.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by login name.
func (r *StoreRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := pick(r.db, r.tx).QueryRowContext(ctx,
		`SELECT id, username, password_hash, store_id, created_at FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.StoreID, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}
