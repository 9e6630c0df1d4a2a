package service

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/repository"
)

// Quoter looks up market data for a ticker.
type Quoter interface {
	Price(ctx context.Context, ticker string) (float64, error)
	DisplayName(ctx context.Context, ticker string) (string, error)
}

// PriceService refreshes the market prices of the holdings tables.
type PriceService struct {
	storeRepo   *repository.StoreRepository
	holdingRepo *repository.HoldingRepository
	quoter      Quoter
}

// NewPriceService creates a new PriceService.
func NewPriceService(storeRepo *repository.StoreRepository, holdingRepo *repository.HoldingRepository, quoter Quoter) *PriceService {
	return &PriceService{
		storeRepo:   storeRepo,
		holdingRepo: holdingRepo,
		quoter:      quoter,
	}
}

// RefreshPrices fetches a price for every holding of both markets and saves
// the tables. Lookups run one at a time in table order, US first. A holding
// whose lookup fails keeps its previous price and is listed in Errors.
// Holdings without a display name get the provider's short name, or their
// symbol when none is available.
func (s *PriceService) RefreshPrices(ctx context.Context, storeID string) (model.PriceRefreshResponse, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return model.PriceRefreshResponse{}, err
	}

	resp := model.PriceRefreshResponse{
		Updated: []model.UpdatedHolding{},
		Errors:  []model.UpdatedHoldingErr{},
	}

	for _, market := range []model.Market{model.MarketUS, model.MarketTW} {
		holdings, err := s.holdingRepo.GetHoldings(ctx, storeID, market)
		if err != nil {
			return model.PriceRefreshResponse{}, err
		}

		for i := range holdings {
			if err := ctx.Err(); err != nil {
				return model.PriceRefreshResponse{}, err
			}
			s.refreshOne(ctx, market, &holdings[i], &resp)
		}

		if err := s.holdingRepo.ReplaceHoldings(ctx, storeID, market, holdings); err != nil {
			return model.PriceRefreshResponse{}, fmt.Errorf("failed to save %s holdings: %w", market, err)
		}
	}

	resp.TotalUpdated = len(resp.Updated)
	resp.TotalErrors = len(resp.Errors)
	resp.Success = resp.TotalUpdated > 0

	log.Info().
		Str("store_id", storeID).
		Int("updated", resp.TotalUpdated).
		Int("errors", resp.TotalErrors).
		Msg("prices refreshed")

	return resp, nil
}

// NoPriceAvailable is reported for a holding the quote provider has no price for.
// Other failures, such as a cancelled request, are reported verbatim.
const NoPriceAvailable = "no price available"

func (s *PriceService) refreshOne(ctx context.Context, market model.Market, h *model.Holding, resp *model.PriceRefreshResponse) {
	if blankKey(h.Symbol) {
		return
	}

	price, err := s.quoter.Price(ctx, h.Symbol)
	if err != nil {
		log.Warn().Str("symbol", h.Symbol).Err(err).Msg("price lookup failed")
		msg := err.Error()
		if apperrors.IsProviderUnavailable(err) {
			msg = NoPriceAvailable
		}
		resp.Errors = append(resp.Errors, model.UpdatedHoldingErr{
			Market: market,
			Symbol: h.Symbol,
			Error:  msg,
		})
	} else if price > 0 {
		h.MarketPrice = price
	}

	if h.DisplayName == "" {
		name, err := s.quoter.DisplayName(ctx, h.Symbol)
		if err != nil {
			name = h.Symbol
		}
		h.DisplayName = name
	}
	if h.Category == "" {
		h.Category = market.DefaultCategory()
	}

	if err == nil && price > 0 {
		resp.Updated = append(resp.Updated, model.UpdatedHolding{
			Market:      market,
			Symbol:      h.Symbol,
			DisplayName: h.DisplayName,
			Price:       price,
		})
	}
}
