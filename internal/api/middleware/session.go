package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

type sessionKey struct{}

// Authenticator resolves a session token.
type Authenticator interface {
	Authenticate(token string) (model.Session, error)
}

// ContextWithSession returns a copy of ctx carrying session.
func ContextWithSession(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session attached by RequireSession.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(model.Session)
	return s, ok
}

// RequireSession rejects requests without a valid "Authorization: Bearer"
// token with 401 Unauthorized and attaches the session to the rest.
//
// Example usage in router:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(middleware.RequireSession(authService))
//	    r.Get("/dashboard", dashboardHandler.Dashboard)
//	})
func RequireSession(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := auth.Authenticate(bearerToken(r))
			if err != nil {
				msg := apperrors.ErrInvalidToken.Error()
				if errors.Is(err, apperrors.ErrMissingToken) {
					msg = apperrors.ErrMissingToken.Error()
				}
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), session)))
		})
	}
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
