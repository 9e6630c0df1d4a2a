package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phuslu/log"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.DefaultLogger
	log.DefaultLogger = log.Logger{Level: log.InfoLevel, Writer: &log.IOWriter{Writer: &buf}}
	t.Cleanup(func() { log.DefaultLogger = prev })

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/holdings/us", nil)
	req.URL.Path += "\r\nforged"
	w := httptest.NewRecorder()
	middleware.Logger(next).ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status to pass through, got %d", w.Code)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" {
		t.Errorf("Expected warn level for a 4xx, got %v", entry["level"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("Unexpected status field: %v", entry["status"])
	}
	if entry["path"] != "/api/holdings/usforged" {
		t.Errorf("Expected CR/LF stripped from path, got %v", entry["path"])
	}
}
