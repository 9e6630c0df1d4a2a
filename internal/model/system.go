package model

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion      string `json:"app_version"`
	DbVersion       string `json:"db_version"`
	MigrationNeeded bool   `json:"migration_needed"`
}
