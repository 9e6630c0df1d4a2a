package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/phuslu/log"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/repository"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/valuation"
)

// PortfolioState is a store's tables loaded together, the input of every
// derived view. It is built per request and never shared.
type PortfolioState struct {
	StoreID     string
	US          []model.Holding
	TW          []model.Holding
	Fixed       []model.FixedAsset
	Liabilities []model.Liability
	Settings    model.Settings
}

// Valuation is the derived view of a PortfolioState.
type Valuation struct {
	Assets  []model.ValuedAsset
	Summary model.Summary
}

// SummaryCard is one headline figure, raw and formatted.
type SummaryCard struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// RankedAsset is a valued asset with its share of total assets.
type RankedAsset struct {
	model.ValuedAsset
	Share     float64 `json:"share"`
	Formatted string  `json:"formatted"`
}

// Dashboard is the response of the overview page.
type Dashboard struct {
	Summary      model.Summary                       `json:"summary"`
	Cards        []SummaryCard                       `json:"cards"`
	Assets       []RankedAsset                       `json:"assets"`
	Allocation   []valuation.Allocation              `json:"allocation"`
	US           []model.ValuedRow[model.Holding]    `json:"us"`
	TW           []model.ValuedRow[model.Holding]    `json:"tw"`
	Fixed        []model.ValuedRow[model.FixedAsset] `json:"fixed"`
	Liabilities  []model.ValuedRow[model.Liability]  `json:"liabilities"`
	Privacy      bool                                `json:"privacy"`
	CurrencyRate float64                             `json:"currencyRate"`
}

// DashboardService values stores and keeps their daily history.
type DashboardService struct {
	storeRepo      *repository.StoreRepository
	holdingRepo    *repository.HoldingRepository
	fixedAssetRepo *repository.FixedAssetRepository
	liabilityRepo  *repository.LiabilityRepository
	settingRepo    *repository.SettingRepository
	historyRepo    *repository.HistoryRepository
	usdRate        float64
	now            func() time.Time
}

// NewDashboardService creates a new DashboardService. usdRate converts the US
// holdings table to TWD.
func NewDashboardService(
	storeRepo *repository.StoreRepository,
	holdingRepo *repository.HoldingRepository,
	fixedAssetRepo *repository.FixedAssetRepository,
	liabilityRepo *repository.LiabilityRepository,
	settingRepo *repository.SettingRepository,
	historyRepo *repository.HistoryRepository,
	usdRate float64,
) *DashboardService {
	return &DashboardService{
		storeRepo:      storeRepo,
		holdingRepo:    holdingRepo,
		fixedAssetRepo: fixedAssetRepo,
		liabilityRepo:  liabilityRepo,
		settingRepo:    settingRepo,
		historyRepo:    historyRepo,
		usdRate:        usdRate,
		now:            time.Now,
	}
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	c := *s
	c.now = now
	return &c
}

// Load reads every table of a store.
func (s *DashboardService) Load(ctx context.Context, storeID string) (PortfolioState, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return PortfolioState{}, err
	}

	state := PortfolioState{StoreID: storeID}
	var err error
	if state.US, err = s.holdingRepo.GetHoldings(ctx, storeID, model.MarketUS); err != nil {
		return PortfolioState{}, err
	}
	if state.TW, err = s.holdingRepo.GetHoldings(ctx, storeID, model.MarketTW); err != nil {
		return PortfolioState{}, err
	}
	if state.Fixed, err = s.fixedAssetRepo.GetFixedAssets(ctx, storeID); err != nil {
		return PortfolioState{}, err
	}
	if state.Liabilities, err = s.liabilityRepo.GetLiabilities(ctx, storeID); err != nil {
		return PortfolioState{}, err
	}
	if state.Settings, err = s.settingRepo.GetSettings(ctx, storeID); err != nil {
		return PortfolioState{}, err
	}
	return state, nil
}

// Value derives the valued assets and the summary of a state.
func (s *DashboardService) Value(state PortfolioState) Valuation {
	assets, total := valuation.Valuate(state.US, state.TW, state.Fixed, s.usdRate)
	return Valuation{
		Assets:  assets,
		Summary: valuation.Summarize(assets, total, state.Liabilities),
	}
}

// Valuate loads and values a store.
func (s *DashboardService) Valuate(ctx context.Context, storeID string) (PortfolioState, Valuation, error) {
	state, err := s.Load(ctx, storeID)
	if err != nil {
		return PortfolioState{}, Valuation{}, err
	}
	return state, s.Value(state), nil
}

// GetDashboard builds the overview of a store and records today's history
// point. A failed history write is logged and does not fail the request.
func (s *DashboardService) GetDashboard(ctx context.Context, storeID string, privacy bool) (Dashboard, error) {
	state, val, err := s.Valuate(ctx, storeID)
	if err != nil {
		return Dashboard{}, err
	}

	if _, _, err := s.record(ctx, storeID, val.Summary); err != nil {
		log.Warn().Str("store_id", storeID).Err(err).Msg("failed to record history point")
	}

	sum := val.Summary
	d := Dashboard{
		Summary: sum,
		Cards: []SummaryCard{
			{Key: "netWorth", Label: "Net Worth", Value: sum.NetWorth, Formatted: FormatTWD(sum.NetWorth, privacy)},
			{Key: "totalAssets", Label: "Total Assets", Value: sum.TotalAssets, Formatted: FormatTWD(sum.TotalAssets, privacy)},
			{Key: "totalLiabilities", Label: "Liabilities", Value: sum.TotalLiabilities, Formatted: FormatTWD(sum.TotalLiabilities, privacy)},
			{Key: "monthlyPayment", Label: "Burn Rate", Value: sum.MonthlyPayment, Formatted: FormatTWD(sum.MonthlyPayment, privacy)},
		},
		Assets:       rank(val.Assets, sum.TotalAssets, privacy),
		Allocation:   valuation.Allocate(val.Assets, sum.TotalAssets),
		Privacy:      privacy,
		CurrencyRate: s.usdRate,
	}
	d.US, _ = valuation.ValueHoldings(state.US, s.usdRate)
	d.TW, _ = valuation.ValueHoldings(state.TW, 1)
	d.Fixed, _ = valuation.ValueFixedAssets(state.Fixed)
	d.Liabilities, _ = valuation.ValueLiabilities(state.Liabilities)

	return d, nil
}

// rank orders assets by value, largest first; equal values keep their input
// order. Privacy mode hides shares as well as amounts.
func rank(assets []model.ValuedAsset, total float64, privacy bool) []RankedAsset {
	out := make([]RankedAsset, len(assets))
	for i, a := range assets {
		share := 0.0
		if total > 0 && !privacy {
			share = a.Value / total
		}
		out[i] = RankedAsset{ValuedAsset: a, Share: share, Formatted: FormatTWD(a.Value, privacy)}
	}
	slices.SortStableFunc(out, func(a, b RankedAsset) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return 0
	})
	return out
}

// RecordSnapshot values a store and appends today's history point unless one
// already exists. It reports the point and whether it was written.
func (s *DashboardService) RecordSnapshot(ctx context.Context, storeID string) (model.HistoryPoint, bool, error) {
	_, val, err := s.Valuate(ctx, storeID)
	if err != nil {
		return model.HistoryPoint{}, false, err
	}
	return s.record(ctx, storeID, val.Summary)
}

func (s *DashboardService) record(ctx context.Context, storeID string, sum model.Summary) (model.HistoryPoint, bool, error) {
	point := sum.Snapshot(s.now())
	written, err := s.historyRepo.InsertHistoryPoint(ctx, storeID, point)
	if err != nil {
		return model.HistoryPoint{}, false, fmt.Errorf("%w: %w", apperrors.ErrFailedToRecordHistory, err)
	}
	return point, written, nil
}

// SnapshotAll records today's history point for every store. Stores that
// fail are logged and skipped; the joined errors are returned.
func (s *DashboardService) SnapshotAll(ctx context.Context) (int, error) {
	stores, err := s.storeRepo.ListStores(ctx)
	if err != nil {
		return 0, err
	}

	written := 0
	var errs []error
	for _, st := range stores {
		_, ok, err := s.RecordSnapshot(ctx, st.ID)
		if err != nil {
			log.Error().Str("store_id", st.ID).Err(err).Msg("snapshot failed")
			errs = append(errs, err)
			continue
		}
		if ok {
			written++
		}
	}
	return written, errors.Join(errs...)
}

// GetHistory returns a store's history, oldest first.
func (s *DashboardService) GetHistory(ctx context.Context, storeID string) ([]model.HistoryPoint, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.historyRepo.GetHistory(ctx, storeID)
}
