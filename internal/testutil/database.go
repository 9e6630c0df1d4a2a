package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/database"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing with the
// production migrations applied.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pooled connection would see its own empty in-memory database.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := database.Configure(ctx, db); err != nil {
		t.Fatalf("Failed to configure test database: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}
