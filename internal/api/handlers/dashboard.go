package handlers

import (
	"net/http"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/request"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
)

// DashboardHandler serves the overview page and the net-worth history.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard handles GET requests for the overview of the session's store.
// Viewing the dashboard records today's history point.
//
// Endpoint: GET /api/dashboard?privacy=bool
// Response: 200 OK with service.Dashboard
// Error: 400 Bad Request if privacy is not a boolean
// Error: 503 Service Unavailable if the store cannot be read
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	privacy, err := request.ParseBool(r.URL.Query(), "privacy")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), session.StoreID, privacy)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildSummary.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, dashboard)
}

// History returns the store's daily net-worth points, oldest first.
//
// Endpoint: GET /api/history
func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	history, err := h.dashboardService.GetHistory(r.Context(), session.StoreID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, history)
}

// SnapshotResponse reports the point for today and whether this call wrote it.
type SnapshotResponse struct {
	Point   model.HistoryPoint `json:"point"`
	Written bool               `json:"written"`
}

// Snapshot records today's history point unless one exists.
//
// Endpoint: POST /api/history/snapshot
// Response: 201 Created when written, 200 OK when today already had a point
func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	point, written, err := h.dashboardService.RecordSnapshot(r.Context(), session.StoreID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordHistory.Error())
		return
	}

	status := http.StatusOK
	if written {
		status = http.StatusCreated
	}
	response.RespondJSON(w, status, SnapshotResponse{Point: point, Written: written})
}
