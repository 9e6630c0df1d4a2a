package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/repository"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
)

// TestUSDRate is the USD/TWD rate the test services value US holdings at.
const TestUSDRate = 32.5

// TestSessionTTL is the session lifetime of NewTestAuthService.
const TestSessionTTL = time.Hour

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewStoreRepository(db),
		repository.NewHoldingRepository(db),
		repository.NewFixedAssetRepository(db),
		repository.NewLiabilityRepository(db),
		repository.NewSettingRepository(db),
	)
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(
		repository.NewStoreRepository(db),
		repository.NewHoldingRepository(db),
		repository.NewFixedAssetRepository(db),
		repository.NewLiabilityRepository(db),
		repository.NewSettingRepository(db),
		repository.NewHistoryRepository(db),
		TestUSDRate,
	)
}

func NewTestForecastService(t *testing.T, db *sql.DB) *service.ForecastService {
	t.Helper()

	return service.NewForecastService(NewTestDashboardService(t, db), NewTestAssetService(t, db))
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(NewTestAssetService(t, db))
}

// NewTestPriceServiceWithMockQuoter wires a PriceService to a fake quote source.
func NewTestPriceServiceWithMockQuoter(t *testing.T, db *sql.DB, quoter service.Quoter) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		repository.NewStoreRepository(db),
		repository.NewHoldingRepository(db),
		quoter,
	)
}

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate session key: %v", err)
	}
	return service.NewAuthService(repository.NewStoreRepository(db), []*fernet.Key{&key}, TestSessionTTL)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Store")
//	// Returns: "Store ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
