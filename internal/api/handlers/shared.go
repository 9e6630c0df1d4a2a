package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/middleware"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes a request body into T.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is empty")
		}
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// sessionOf returns the session attached by middleware.RequireSession. When
// there is none it writes 401 and returns false.
func sessionOf(w http.ResponseWriter, r *http.Request) (model.Session, bool) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "unauthorized", apperrors.ErrMissingToken.Error())
	}
	return s, ok
}

// respondServiceError maps a service error to a status code. Errors without
// a specific mapping are answered with 500 and the given message.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	var verr *validation.Error
	var missing *apperrors.MissingColumnError

	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.As(err, &missing):
		response.RespondError(w, http.StatusBadRequest, missing.Error(), missing.Field)
	case errors.Is(err, apperrors.ErrUnsupportedFormat),
		errors.Is(err, apperrors.ErrInvalidImportKind),
		errors.Is(err, apperrors.ErrInvalidMarket),
		errors.Is(err, apperrors.ErrDuplicateSymbol):
		response.RespondError(w, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrMissingToken):
		response.RespondError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, apperrors.ErrHoldingNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperrors.ErrUserExists):
		response.RespondError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, apperrors.ErrStoreUnreachable):
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrStoreUnreachable.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
