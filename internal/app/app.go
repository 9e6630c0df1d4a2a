// Package app assembles the database, the quote provider and the services
// from a configuration. Both the HTTP server and nexusctl start from here.
package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/phuslu/log"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/config"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/database"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/repository"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/yahoo"
)

// App is a fully wired backend.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Quoter   *yahoo.Quoter
	Services api.Services
}

// New opens the database, applies pending migrations and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	keys, err := service.SessionKeys(cfg.Session.Key)
	if err != nil {
		db.Close()
		return nil, err
	}

	client := yahoo.NewFinanceClient(
		yahoo.WithChartURL(cfg.Yahoo.ChartURL),
		yahoo.WithQuoteURL(cfg.Yahoo.QuoteURL),
		yahoo.WithTimeout(cfg.Yahoo.Timeout.Duration),
		yahoo.WithRateLimit(cfg.Yahoo.RateLimit),
	)
	quoter := yahoo.NewQuoter(client)

	// Create repositories
	storeRepo := repository.NewStoreRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	fixedAssetRepo := repository.NewFixedAssetRepository(db)
	liabilityRepo := repository.NewLiabilityRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Create services
	assetService := service.NewAssetService(
		storeRepo,
		holdingRepo,
		fixedAssetRepo,
		liabilityRepo,
		settingRepo,
	)
	dashboardService := service.NewDashboardService(
		storeRepo,
		holdingRepo,
		fixedAssetRepo,
		liabilityRepo,
		settingRepo,
		historyRepo,
		cfg.Market.USDTWDRate,
	)

	return &App{
		Config: cfg,
		DB:     db,
		Quoter: quoter,
		Services: api.Services{
			System:    service.NewSystemService(db),
			Auth:      service.NewAuthService(storeRepo, keys, cfg.Session.TTL.Duration),
			Assets:    assetService,
			Prices:    service.NewPriceService(storeRepo, holdingRepo, quoter),
			Imports:   service.NewImportService(assetService),
			Dashboard: dashboardService,
			Forecast:  service.NewForecastService(dashboardService, assetService),
		},
	}, nil
}

// Handler returns the HTTP router over the app's services.
func (a *App) Handler() http.Handler {
	return api.NewRouter(a.Services, a.Config)
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}
