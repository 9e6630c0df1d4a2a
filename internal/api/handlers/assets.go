package handlers

import (
	"net/http"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/request"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/validation"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/valuation"
)

// AssetHandler handles the fixed asset and liability tables and the settings.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// TableResponse is an editable table with each row's value and share.
type TableResponse[T any] struct {
	Rows  []model.ValuedRow[T] `json:"rows"`
	Total float64              `json:"total"`
}

// GetFixedAssets returns the fixed asset table.
//
// Endpoint: GET /api/fixed-assets
func (h *AssetHandler) GetFixedAssets(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	assets, err := h.assetService.GetFixedAssets(r.Context(), session.StoreID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}
	rows, total := valuation.ValueFixedAssets(assets)
	response.RespondJSON(w, http.StatusOK, TableResponse[model.FixedAsset]{Rows: rows, Total: total})
}

// SaveFixedAssets replaces the fixed asset table.
//
// Endpoint: PUT /api/fixed-assets
// Request Body: SaveFixedAssetsRequest
// Response: 200 OK with the stored table
// Error: 400 Bad Request if validation fails
func (h *AssetHandler) SaveFixedAssets(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.SaveFixedAssetsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	saved, err := h.assetService.SaveFixedAssets(r.Context(), session.StoreID, req.FixedAssets())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave.Error())
		return
	}
	rows, total := valuation.ValueFixedAssets(saved)
	response.RespondJSON(w, http.StatusOK, TableResponse[model.FixedAsset]{Rows: rows, Total: total})
}

// GetLiabilities returns the liability table.
//
// Endpoint: GET /api/liabilities
func (h *AssetHandler) GetLiabilities(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	liabilities, err := h.assetService.GetLiabilities(r.Context(), session.StoreID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}
	rows, total := valuation.ValueLiabilities(liabilities)
	response.RespondJSON(w, http.StatusOK, TableResponse[model.Liability]{Rows: rows, Total: total})
}

// SaveLiabilities replaces the liability table.
//
// Endpoint: PUT /api/liabilities
// Request Body: SaveLiabilitiesRequest
// Response: 200 OK with the stored table
// Error: 400 Bad Request if validation fails
func (h *AssetHandler) SaveLiabilities(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.SaveLiabilitiesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	saved, err := h.assetService.SaveLiabilities(r.Context(), session.StoreID, req.Liabilities())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave.Error())
		return
	}
	rows, total := valuation.ValueLiabilities(saved)
	response.RespondJSON(w, http.StatusOK, TableResponse[model.Liability]{Rows: rows, Total: total})
}

// GetSettings returns the FIRE settings, defaults filled in.
//
// Endpoint: GET /api/settings
func (h *AssetHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	settings, err := h.assetService.GetSettings(r.Context(), session.StoreID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, settings)
}

// SaveSettings overwrites the FIRE settings.
//
// Endpoint: PUT /api/settings
// Request Body: SettingsRequest
// Error: 400 Bad Request if validation fails
func (h *AssetHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.SettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	settings, err := h.assetService.SaveSettings(r.Context(), session.StoreID, req.Settings())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, settings)
}
