package middleware

import (
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phuslu/log"
)

// Logger is a middleware that logs one line per HTTP request.
// Server errors are logged at error level, client errors at warn.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// Strip CR/LF from user-supplied values before logging.
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace

		entry := log.Info()
		switch {
		case wrapped.statusCode >= http.StatusInternalServerError:
			entry = log.Error()
		case wrapped.statusCode >= http.StatusBadRequest:
			entry = log.Warn()
		}
		entry.
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", sanitize(r.Method)).
			Str("path", sanitize(r.URL.Path)).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
