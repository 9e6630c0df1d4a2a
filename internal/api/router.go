package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Nexus-Wealth-Backend/internal/api/middleware"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/config"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
)

// Services bundles the services the router dispatches to.
type Services struct {
	System    *service.SystemService
	Auth      *service.AuthService
	Assets    *service.AssetService
	Prices    *service.PriceService
	Imports   *service.ImportService
	Dashboard *service.DashboardService
	Forecast  *service.ForecastService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svc.System)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	holdingHandler := handlers.NewHoldingHandler(svc.Assets, svc.Prices, cfg.Market.USDTWDRate)
	assetHandler := handlers.NewAssetHandler(svc.Assets)
	importHandler := handlers.NewImportHandler(svc.Imports)
	forecastHandler := handlers.NewForecastHandler(svc.Forecast)

	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireSession(svc.Auth))

			r.Get("/auth/me", authHandler.Me)
			r.Get("/dashboard", dashboardHandler.Dashboard)

			r.Route("/history", func(r chi.Router) {
				r.Get("/", dashboardHandler.History)
				r.Post("/snapshot", dashboardHandler.Snapshot)
			})

			r.Route("/holdings", func(r chi.Router) {
				r.Post("/refresh", holdingHandler.RefreshPrices)
				r.Route("/{market}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateMarketMiddleware)
					r.Get("/", holdingHandler.GetHoldings)
					r.Put("/", holdingHandler.SaveHoldings)
					r.Delete("/{symbol}", holdingHandler.DeleteHolding)
				})
			})

			r.Route("/fixed-assets", func(r chi.Router) {
				r.Get("/", assetHandler.GetFixedAssets)
				r.Put("/", assetHandler.SaveFixedAssets)
			})

			r.Route("/liabilities", func(r chi.Router) {
				r.Get("/", assetHandler.GetLiabilities)
				r.Put("/", assetHandler.SaveLiabilities)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", assetHandler.GetSettings)
				r.Put("/", assetHandler.SaveSettings)
			})

			r.Post("/import/{kind}", importHandler.Import)

			r.Route("/forecast", func(r chi.Router) {
				r.Get("/estimate", forecastHandler.Estimate)
				r.Post("/estimate", forecastHandler.ApplyEstimate)
				r.Get("/projection", forecastHandler.Projection)
			})
		})
	})

	return r
}
