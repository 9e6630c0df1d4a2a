package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/repository"
)

// StoreBuilder provides a fluent interface for creating test stores.
//
// Example usage:
//
//	store := testutil.NewStore().Build(t, db)
//
//	store := testutil.NewStore().
//	    WithName("Family").
//	    Build(t, db)
type StoreBuilder struct {
	ID   string
	Name string
}

// NewStore creates a StoreBuilder with sensible defaults.
func NewStore() *StoreBuilder {
	return &StoreBuilder{
		ID:   MakeID(),
		Name: MakeName("Test Store"),
	}
}

// WithID sets a custom ID.
func (b *StoreBuilder) WithID(id string) *StoreBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *StoreBuilder) WithName(name string) *StoreBuilder {
	b.Name = name
	return b
}

// Build creates the store in the database and returns it.
func (b *StoreBuilder) Build(t *testing.T, db *sql.DB) model.Store {
	t.Helper()

	created := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO store (id, name, created_at) VALUES (?, ?, ?)`, b.ID, b.Name, created)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	return model.Store{ID: b.ID, Name: b.Name, CreatedAt: created}
}

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	user := testutil.NewUser(store.ID).
//	    WithUsername("alice").
//	    WithPassword("secret").
//	    Build(t, db)
type UserBuilder struct {
	ID       string
	Username string
	Password string
	StoreID  string
}

// NewUser creates a UserBuilder for the given store.
func NewUser(storeID string) *UserBuilder {
	return &UserBuilder{
		ID:       MakeID(),
		Username: MakeName("user"),
		Password: "password",
		StoreID:  storeID,
	}
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithPassword sets the plain text password to hash.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	created := time.Now().UTC()
	_, err = db.Exec(
		`INSERT INTO users (id, username, password_hash, store_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Username, string(hash), b.StoreID, created,
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{ID: b.ID, Username: b.Username, PasswordHash: string(hash), StoreID: b.StoreID, CreatedAt: created}
}

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	testutil.NewHolding("AAPL").
//	    WithShares(10).
//	    WithMarketPrice(200).
//	    Build(t, db, store.ID, model.MarketUS)
type HoldingBuilder struct {
	holding model.Holding
}

// NewHolding creates a HoldingBuilder with one share and no prices.
func NewHolding(symbol string) *HoldingBuilder {
	return &HoldingBuilder{holding: model.Holding{Symbol: symbol, Shares: 1}}
}

// WithDisplayName sets the display name.
func (b *HoldingBuilder) WithDisplayName(name string) *HoldingBuilder {
	b.holding.DisplayName = name
	return b
}

// WithShares sets the number of shares.
func (b *HoldingBuilder) WithShares(shares float64) *HoldingBuilder {
	b.holding.Shares = shares
	return b
}

// WithCategory sets the category.
func (b *HoldingBuilder) WithCategory(c model.Category) *HoldingBuilder {
	b.holding.Category = c
	return b
}

// WithOverridePrice sets the user override price.
func (b *HoldingBuilder) WithOverridePrice(price float64) *HoldingBuilder {
	b.holding.OverridePrice = price
	return b
}

// WithMarketPrice sets the last fetched market price.
func (b *HoldingBuilder) WithMarketPrice(price float64) *HoldingBuilder {
	b.holding.MarketPrice = price
	return b
}

// Holding returns the built holding without storing it.
func (b *HoldingBuilder) Holding() model.Holding {
	return b.holding
}

// Build appends the holding to a store's holdings table and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB, storeID string, market model.Market) model.Holding {
	t.Helper()

	h := b.holding
	if h.Category == "" {
		h.Category = market.DefaultCategory()
	}

	repo := repository.NewHoldingRepository(db)
	existing, err := repo.GetHoldings(context.Background(), storeID, market)
	if err != nil {
		t.Fatalf("Failed to read holdings: %v", err)
	}
	if err := repo.ReplaceHoldings(context.Background(), storeID, market, append(existing, h)); err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}
	return h
}

// CreateFixedAsset appends a fixed asset to a store.
func CreateFixedAsset(t *testing.T, db *sql.DB, storeID, name string, value float64, category model.Category) model.FixedAsset {
	t.Helper()

	a := model.FixedAsset{Name: name, CurrentValue: value, Category: category}
	repo := repository.NewFixedAssetRepository(db)
	existing, err := repo.GetFixedAssets(context.Background(), storeID)
	if err != nil {
		t.Fatalf("Failed to read fixed assets: %v", err)
	}
	if err := repo.ReplaceFixedAssets(context.Background(), storeID, append(existing, a)); err != nil {
		t.Fatalf("Failed to create test fixed asset: %v", err)
	}
	return a
}

// CreateLiability appends a liability to a store.
func CreateLiability(t *testing.T, db *sql.DB, storeID, name string, amount, monthly float64) model.Liability {
	t.Helper()

	l := model.Liability{Name: name, Amount: amount, MonthlyPayment: monthly}
	repo := repository.NewLiabilityRepository(db)
	existing, err := repo.GetLiabilities(context.Background(), storeID)
	if err != nil {
		t.Fatalf("Failed to read liabilities: %v", err)
	}
	if err := repo.ReplaceLiabilities(context.Background(), storeID, append(existing, l)); err != nil {
		t.Fatalf("Failed to create test liability: %v", err)
	}
	return l
}

// CreateHistoryPoint inserts a history point for the given day.
func CreateHistoryPoint(t *testing.T, db *sql.DB, storeID string, day time.Time, netWorth float64) model.HistoryPoint {
	t.Helper()

	p := model.Summary{NetWorth: netWorth, TotalAssets: netWorth}.Snapshot(day)
	if _, err := repository.NewHistoryRepository(db).InsertHistoryPoint(context.Background(), storeID, p); err != nil {
		t.Fatalf("Failed to create test history point: %v", err)
	}
	return p
}
