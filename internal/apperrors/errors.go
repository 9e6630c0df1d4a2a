package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrUserNotFound indicates that no user matches the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates that the username is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates a username/password pair that does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrHoldingNotFound indicates that a holding with the given symbol does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrDuplicateSymbol indicates a holdings table that lists the same symbol twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol")

	// ErrInvalidMarket indicates a holdings table other than "us" or "tw".
	ErrInvalidMarket = errors.New("invalid market")

	// ErrInvalidImportKind indicates an import target other than the four known tables.
	ErrInvalidImportKind = errors.New("invalid import kind")

	// ErrUnsupportedFormat indicates an import file that is neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Session errors.
var (
	ErrMissingToken = errors.New("missing session token")
	ErrInvalidToken = errors.New("session token is invalid or expired")
)

// ErrStoreUnreachable indicates that the data store cannot be opened or that the
// store a user maps to does not exist. Nothing meaningful can be computed without it.
var ErrStoreUnreachable = errors.New("data store unreachable")

// Generic operation failures.
var (
	ErrFailedToRetrieve      = errors.New("failed to retrieve data")
	ErrFailedToSave          = errors.New("failed to save data")
	ErrFailedToBuildSummary  = errors.New("failed to build summary")
	ErrFailedToImport        = errors.New("failed to import file")
	ErrFailedToRefreshPrices = errors.New("failed to refresh prices")
	ErrFailedToRecordHistory = errors.New("failed to record history")
)

// MissingColumnError rejects an import whose header row has no column for a
// mandatory field. Field names both the local and the English header.
type MissingColumnError struct {
	Field string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Field)
}

// ProviderUnavailableError reports that the market data provider could not
// supply a usable value for a symbol.
type ProviderUnavailableError struct {
	Symbol string
	Err    error
}

func (e *ProviderUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("quote provider unavailable for %s", e.Symbol)
	}
	return fmt.Sprintf("quote provider unavailable for %s: %v", e.Symbol, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// IsProviderUnavailable reports whether err is a ProviderUnavailableError.
func IsProviderUnavailable(err error) bool {
	var pe *ProviderUnavailableError
	return errors.As(err, &pe)
}

// IsMissingColumn reports whether err is a MissingColumnError.
func IsMissingColumn(err error) bool {
	var me *MissingColumnError
	return errors.As(err, &me)
}
