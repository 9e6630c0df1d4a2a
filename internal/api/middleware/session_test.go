package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/middleware"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/testutil"
)

//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestRequireSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	auth := testutil.NewTestAuthService(t, db)
	token, err := auth.Issue(model.Session{Username: "alice", StoreID: "store-1"})
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	newHandler := func(called *bool, got *model.Session) http.Handler {
		return middleware.RequireSession(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			*got, _ = middleware.SessionFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("rejects request without token", func(t *testing.T) {
		var called bool
		var got model.Session
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		w := httptest.NewRecorder()

		newHandler(&called, &got).ServeHTTP(w, req)

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}

		var response map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		if response["details"] != "missing session token" {
			t.Errorf("Expected 'missing session token', got '%s'", response["details"])
		}
	})

	t.Run("rejects request with invalid token", func(t *testing.T) {
		var called bool
		var got model.Session
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer invalid")
		w := httptest.NewRecorder()

		newHandler(&called, &got).ServeHTTP(w, req)

		if called {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects other schemes", func(t *testing.T) {
		var called bool
		var got model.Session
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "Basic "+token)
		w := httptest.NewRecorder()

		newHandler(&called, &got).ServeHTTP(w, req)

		if called || w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("attaches the session for a valid token", func(t *testing.T) {
		var called bool
		var got model.Session
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "bearer "+token)
		w := httptest.NewRecorder()

		newHandler(&called, &got).ServeHTTP(w, req)

		if !called {
			t.Fatal("Expected next handler to be called")
		}
		if got.StoreID != "store-1" || got.Username != "alice" {
			t.Errorf("Unexpected session: %+v", got)
		}
	})
}

func TestSessionFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := middleware.SessionFromContext(req.Context()); ok {
		t.Error("Expected no session on a bare request")
	}
}
