package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/forecast"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// DefaultGrowthRate is the real estate growth and inflation rate, in percent,
// used when a projection request does not name one.
const DefaultGrowthRate = 3.0

// EstimateResult is a store's expected annual return and how it was derived.
type EstimateResult struct {
	Rate         float64 `json:"rate"`
	IncludeFixed bool    `json:"includeFixed"`
	Markdown     string  `json:"markdown"`
	HTML         string  `json:"html"`
}

// ProjectionParams are the optional overrides of a projection request.
// Nil fields fall back to the store's settings, or DefaultGrowthRate.
type ProjectionParams struct {
	IncludeFixed     bool
	Age              *int
	Savings          *float64
	ReturnRate       *float64
	Expense          *float64
	RealEstateGrowth *float64
	Inflation        *float64
}

// ProjectionResult is a projection together with the inputs it was run with.
type ProjectionResult struct {
	Input forecast.ProjectionInput `json:"input"`
	forecast.Projection
}

// ForecastService runs the return estimate and the FIRE projection on a store.
type ForecastService struct {
	dashboard *DashboardService
	assets    *AssetService
	markdown  goldmark.Markdown
}

// NewForecastService creates a new ForecastService.
func NewForecastService(dashboard *DashboardService, assets *AssetService) *ForecastService {
	return &ForecastService{
		dashboard: dashboard,
		assets:    assets,
		markdown:  goldmark.New(),
	}
}

// Estimate computes the value weighted expected return of a store.
func (s *ForecastService) Estimate(ctx context.Context, storeID string, includeFixed bool) (EstimateResult, error) {
	_, val, err := s.dashboard.Valuate(ctx, storeID)
	if err != nil {
		return EstimateResult{}, err
	}

	rate, explanation := forecast.Estimate(val.Assets, includeFixed)

	var html bytes.Buffer
	if err := s.markdown.Convert([]byte(explanation), &html); err != nil {
		return EstimateResult{}, fmt.Errorf("failed to render explanation: %w", err)
	}

	return EstimateResult{
		Rate:         rate,
		IncludeFixed: includeFixed,
		Markdown:     explanation,
		HTML:         html.String(),
	}, nil
}

// ApplyEstimate computes the expected return and stores it as the store's
// return rate setting.
func (s *ForecastService) ApplyEstimate(ctx context.Context, storeID string, includeFixed bool) (EstimateResult, model.Settings, error) {
	est, err := s.Estimate(ctx, storeID, includeFixed)
	if err != nil {
		return EstimateResult{}, model.Settings{}, err
	}
	settings, err := s.assets.GetSettings(ctx, storeID)
	if err != nil {
		return EstimateResult{}, model.Settings{}, err
	}
	settings.ReturnRate = est.Rate
	settings, err = s.assets.SaveSettings(ctx, storeID, settings)
	if err != nil {
		return EstimateResult{}, model.Settings{}, err
	}
	return est, settings, nil
}

// Project runs the FIRE projection for a store.
//
// Investable capital is net worth less fixed assets. When IncludeFixed is
// set, fixed assets are carried as real estate and grow at RealEstateGrowth;
// otherwise they are left out of the curve.
func (s *ForecastService) Project(ctx context.Context, storeID string, p ProjectionParams) (ProjectionResult, error) {
	state, val, err := s.dashboard.Valuate(ctx, storeID)
	if err != nil {
		return ProjectionResult{}, err
	}

	in := ProjectionInputFor(val.Summary, state.Settings, p)
	return ProjectionResult{Input: in, Projection: forecast.Project(in)}, nil
}

// ProjectionInputFor resolves a projection's inputs from a summary, the
// stored settings and the request overrides.
func ProjectionInputFor(sum model.Summary, settings model.Settings, p ProjectionParams) forecast.ProjectionInput {
	in := forecast.ProjectionInput{
		Age:              settings.Age,
		Investable:       sum.NetWorth - sum.FixedValue,
		AnnualSavings:    settings.Savings,
		ReturnRate:       settings.ReturnRate,
		RealEstateGrowth: DefaultGrowthRate,
		Inflation:        DefaultGrowthRate,
		TargetExpense:    settings.Expense,
		GrowRealEstate:   p.IncludeFixed,
	}
	if p.IncludeFixed {
		in.RealEstate = sum.FixedValue
	}
	if p.Age != nil {
		in.Age = *p.Age
	}
	if p.Savings != nil {
		in.AnnualSavings = *p.Savings
	}
	if p.ReturnRate != nil {
		in.ReturnRate = *p.ReturnRate
	}
	if p.Expense != nil {
		in.TargetExpense = *p.Expense
	}
	if p.RealEstateGrowth != nil {
		in.RealEstateGrowth = *p.RealEstateGrowth
	}
	if p.Inflation != nil {
		in.Inflation = *p.Inflation
	}
	return in
}
