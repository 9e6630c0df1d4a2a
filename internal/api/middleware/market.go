package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/validation"
)

// ValidateMarketMiddleware validates that the market URL parameter names one
// of the holdings tables ("us" or "tw").
// Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/holdings/{market}", func(r chi.Router) {
//	    r.Use(middleware.ValidateMarketMiddleware)
//	    r.Get("/", handler.GetHoldings)
//	})
func ValidateMarketMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		market := chi.URLParam(r, "market")

		if market == "" {
			response.RespondError(w, http.StatusBadRequest, "market is required", "")
			return
		}

		if _, err := validation.ValidateMarket(market); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid market", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
