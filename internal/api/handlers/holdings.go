package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/request"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/validation"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/valuation"
)

// HoldingHandler handles the two holdings tables and their price refresh.
type HoldingHandler struct {
	assetService *service.AssetService
	priceService *service.PriceService
	usdRate      float64
}

// NewHoldingHandler creates a new HoldingHandler. usdRate values the US table in TWD.
func NewHoldingHandler(assetService *service.AssetService, priceService *service.PriceService, usdRate float64) *HoldingHandler {
	return &HoldingHandler{
		assetService: assetService,
		priceService: priceService,
		usdRate:      usdRate,
	}
}

// HoldingsResponse is a holdings table with each row's TWD value.
type HoldingsResponse struct {
	Market model.Market                     `json:"market"`
	Rows   []model.ValuedRow[model.Holding] `json:"rows"`
	Total  float64                          `json:"total"`
}

// GetHoldings handles GET requests for one holdings table.
//
// Endpoint: GET /api/holdings/{market}
// Response: 200 OK with HoldingsResponse
// Error: 400 Bad Request if market is not us or tw (validated by middleware)
func (h *HoldingHandler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	market, _ := validation.ValidateMarket(chi.URLParam(r, "market"))

	holdings, err := h.assetService.GetHoldings(r.Context(), session.StoreID, market)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieve.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, h.valued(market, holdings))
}

// SaveHoldings handles PUT requests replacing one holdings table.
// Rows with a blank symbol are dropped.
//
// Endpoint: PUT /api/holdings/{market}
// Request Body: SaveHoldingsRequest
// Response: 200 OK with the stored table as HoldingsResponse
// Error: 400 Bad Request if validation fails or a symbol is listed twice
func (h *HoldingHandler) SaveHoldings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	market, _ := validation.ValidateMarket(chi.URLParam(r, "market"))

	req, err := parseJSON[request.SaveHoldingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	saved, err := h.assetService.SaveHoldings(r.Context(), session.StoreID, market, req.Holdings())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, h.valued(market, saved))
}

// DeleteHolding removes one row from a holdings table.
//
// Endpoint: DELETE /api/holdings/{market}/{symbol}
// Response: 204 No Content
// Error: 404 Not Found if the symbol is not in the table
func (h *HoldingHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}
	market, _ := validation.ValidateMarket(chi.URLParam(r, "market"))

	if err := h.assetService.DeleteHolding(r.Context(), session.StoreID, market, chi.URLParam(r, "symbol")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave.Error())
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RefreshPrices fetches current prices for both holdings tables and saves them.
// Tickers the provider cannot price are listed in the response and keep their
// previous price.
//
// Endpoint: POST /api/holdings/refresh
// Response: 200 OK with model.PriceRefreshResponse
func (h *HoldingHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	resp, err := h.priceService.RefreshPrices(r.Context(), session.StoreID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRefreshPrices.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

func (h *HoldingHandler) valued(market model.Market, holdings []model.Holding) HoldingsResponse {
	rate := 1.0
	if market == model.MarketUS {
		rate = h.usdRate
	}
	rows, total := valuation.ValueHoldings(holdings, rate)
	return HoldingsResponse{Market: market, Rows: rows, Total: total}
}
