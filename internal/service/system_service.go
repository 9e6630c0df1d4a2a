package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/database"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// CheckVersion reports the application and schema versions.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	pending, err := database.PendingMigrations(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       strconv.FormatInt(dbVersion, 10),
		MigrationNeeded: pending,
	}, nil
}
