package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/testutil"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/version"
)

// newSystemHandler returns a handler over a migrated database. When closed is
// set the database is closed before the handler sees it.
func newSystemHandler(t *testing.T, closed bool) *SystemHandler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if closed {
		db.Close()
	}
	return NewSystemHandler(testutil.NewTestSystemService(t, db))
}

// TestSystemHandler_Health tests the liveness endpoint.
//
// WHY: Deployments poll /api/system/health and read the database field to
// tell an unreachable SQLite file apart from a stopped process.
func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name         string
		closed       bool
		wantCode     int
		wantStatus   string
		wantDatabase string
		wantError    bool
	}{
		{"open database", false, http.StatusOK, "healthy", "connected", false},
		{"closed database", true, http.StatusServiceUnavailable, "unhealthy", "disconnected", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newSystemHandler(t, tt.closed)
			w := httptest.NewRecorder()

			handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

			if w.Code != tt.wantCode {
				t.Fatalf("Expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			body := testutil.DecodeJSON[HealthResponse](t, w)
			if body.Status != tt.wantStatus || body.Database != tt.wantDatabase {
				t.Errorf("Expected %s/%s, got %+v", tt.wantStatus, tt.wantDatabase, body)
			}
			if (body.Error != "") != tt.wantError {
				t.Errorf("Unexpected error field %q", body.Error)
			}
		})
	}
}

// TestSystemHandler_Version tests the version endpoint.
//
// WHY: The frontend compares db_version against the schema it expects, so the
// goose version of the embedded migrations must come through unchanged.
func TestSystemHandler_Version(t *testing.T) {
	t.Run("reports build and schema version", func(t *testing.T) {
		handler := newSystemHandler(t, false)
		w := httptest.NewRecorder()

		handler.Version(w, httptest.NewRequest(http.MethodGet, "/api/system/version", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		got := testutil.DecodeJSON[VersionInfoResponse](t, w)
		want := VersionInfoResponse{AppVersion: version.Version, DbVersion: "1", MigrationNeeded: false}
		if got != want {
			t.Errorf("Expected %+v, got %+v", want, got)
		}
	})

	t.Run("closed database is a server error", func(t *testing.T) {
		handler := newSystemHandler(t, true)
		w := httptest.NewRecorder()

		handler.Version(w, httptest.NewRequest(http.MethodGet, "/api/system/version", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
