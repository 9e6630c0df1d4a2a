package handlers

import (
	"net/http"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/request"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
)

// ForecastHandler serves the return estimate and the FIRE projection.
type ForecastHandler struct {
	forecastService *service.ForecastService
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastService *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
	}
}

// Estimate returns the weighted expected return and its explanation.
//
// Endpoint: GET /api/forecast/estimate?includeFixed=bool
// Response: 200 OK with service.EstimateResult
func (h *ForecastHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	includeFixed, err := request.ParseBool(r.URL.Query(), "includeFixed")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	est, err := h.forecastService.Estimate(r.Context(), session.StoreID, includeFixed)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, est)
}

// ApplyEstimateResponse is the estimate together with the settings it updated.
type ApplyEstimateResponse struct {
	Estimate service.EstimateResult `json:"estimate"`
	Settings model.Settings         `json:"settings"`
}

// ApplyEstimate computes the estimate and saves it as the return rate setting.
//
// Endpoint: POST /api/forecast/estimate?includeFixed=bool
// Response: 200 OK with ApplyEstimateResponse
func (h *ForecastHandler) ApplyEstimate(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	includeFixed, err := request.ParseBool(r.URL.Query(), "includeFixed")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	est, settings, err := h.forecastService.ApplyEstimate(r.Context(), session.StoreID, includeFixed)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, ApplyEstimateResponse{Estimate: est, Settings: settings})
}

// Projection runs the FIRE projection. Query parameters override the stored
// settings for this request only.
//
// Endpoint: GET /api/forecast/projection
// Query: includeFixed, age, savings, returnRate, expense, realEstateGrowth, inflation
// Response: 200 OK with service.ProjectionResult
// Error: 400 Bad Request if a parameter is malformed
func (h *ForecastHandler) Projection(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q, err := request.ParseProjectionQuery(r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	res, err := h.forecastService.Project(r.Context(), session.StoreID, service.ProjectionParams(q))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, res)
}
