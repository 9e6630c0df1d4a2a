// Package valuation converts raw holdings, fixed assets and liabilities into
// TWD valued assets and the headline totals of a store.
package valuation

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// blankKey reports whether an identifying field should be treated as missing.
// "None" and "nan" are what the spreadsheet era left behind in empty cells.
func blankKey(key string) bool {
	k := strings.TrimSpace(key)
	return k == "" || k == "None" || strings.EqualFold(k, "nan")
}

// HoldingValue computes price x shares x rate for a single holding.
func HoldingValue(h model.Holding, rate float64) float64 {
	return decimal.NewFromFloat(h.EffectivePrice()).
		Mul(decimal.NewFromFloat(h.Shares)).
		Mul(decimal.NewFromFloat(rate)).
		InexactFloat64()
}

// Valuate turns the three asset tables into a single list of valued assets.
//
// US holdings are converted with currencyRate, TW holdings with a rate of 1 and
// fixed assets are taken at their current value. Rows with a blank key or a
// value <= 0 are left out entirely; this keeps the allocation views clean but
// also hides legitimately zero positions.
//
// The returned total is the sum of the emitted values, accumulated in output order.
func Valuate(us, tw []model.Holding, fixed []model.FixedAsset, currencyRate float64) ([]model.ValuedAsset, float64) {
	assets := make([]model.ValuedAsset, 0, len(us)+len(tw)+len(fixed))
	total := 0.0

	emit := func(name string, category model.Category, value float64) {
		if blankKey(name) || value <= 0 {
			return
		}
		assets = append(assets, model.ValuedAsset{
			Name:     strings.TrimSpace(name),
			Category: category,
			Value:    value,
		})
		total += value
	}

	for _, h := range us {
		emit(h.Symbol, categoryOr(h.Category, model.CategoryUSStock), HoldingValue(h, currencyRate))
	}
	for _, h := range tw {
		emit(h.Symbol, categoryOr(h.Category, model.CategoryTWStock), HoldingValue(h, 1))
	}
	for _, f := range fixed {
		emit(f.Name, categoryOr(f.Category, model.CategoryFixedAsset), f.CurrentValue)
	}

	return assets, total
}

// Summarize combines the valued assets with the liabilities into the headline totals.
func Summarize(assets []model.ValuedAsset, totalAssets float64, liabilities []model.Liability) model.Summary {
	debt := decimal.Zero
	monthly := decimal.Zero
	for _, l := range liabilities {
		debt = debt.Add(decimal.NewFromFloat(l.Amount))
		monthly = monthly.Add(decimal.NewFromFloat(l.MonthlyPayment))
	}

	fixed := 0.0
	for _, a := range assets {
		if a.Category.IsFixed() {
			fixed += a.Value
		}
	}

	totalLiabilities := debt.InexactFloat64()
	return model.Summary{
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         decimal.NewFromFloat(totalAssets).Sub(debt).InexactFloat64(),
		MonthlyPayment:   monthly.InexactFloat64(),
		FixedValue:       fixed,
	}
}

// ValueHoldings values every row of a holdings table, including zero rows,
// and computes each row's share of the table total.
func ValueHoldings(rows []model.Holding, rate float64) ([]model.ValuedRow[model.Holding], float64) {
	values := make([]float64, len(rows))
	for i, h := range rows {
		values[i] = HoldingValue(h, rate)
	}
	return withShares(rows, values)
}

// ValueFixedAssets is ValueHoldings for the fixed asset table.
func ValueFixedAssets(rows []model.FixedAsset) ([]model.ValuedRow[model.FixedAsset], float64) {
	values := make([]float64, len(rows))
	for i, f := range rows {
		values[i] = f.CurrentValue
	}
	return withShares(rows, values)
}

// ValueLiabilities is ValueHoldings for the liability table, keyed on the amount owed.
func ValueLiabilities(rows []model.Liability) ([]model.ValuedRow[model.Liability], float64) {
	values := make([]float64, len(rows))
	for i, l := range rows {
		values[i] = l.Amount
	}
	return withShares(rows, values)
}

func withShares[T any](rows []T, values []float64) ([]model.ValuedRow[T], float64) {
	total := 0.0
	for _, v := range values {
		total += v
	}
	out := make([]model.ValuedRow[T], len(rows))
	for i, r := range rows {
		share := 0.0
		if total > 0 {
			share = values[i] / total
		}
		out[i] = model.ValuedRow[T]{Row: r, Value: values[i], Share: share}
	}
	return out, total
}

func categoryOr(c, fallback model.Category) model.Category {
	if c == "" {
		return fallback
	}
	return c
}

// Allocation is the total value held in one category.
type Allocation struct {
	Category model.Category `json:"category"`
	Value    float64        `json:"value"`
	Share    float64        `json:"share"`
}

// Allocate groups valued assets by category, in model.Categories order.
func Allocate(assets []model.ValuedAsset, total float64) []Allocation {
	sums := make(map[model.Category]float64)
	for _, a := range assets {
		sums[a.Category] += a.Value
	}
	order := slices.Clone(model.Categories)
	var unknown []model.Category
	for c := range sums {
		if !c.Valid() {
			unknown = append(unknown, c)
		}
	}
	slices.Sort(unknown)
	order = append(order, unknown...)

	out := make([]Allocation, 0, len(sums))
	for _, c := range order {
		v, ok := sums[c]
		if !ok {
			continue
		}
		share := 0.0
		if total > 0 {
			share = v / total
		}
		out = append(out, Allocation{Category: c, Value: v, Share: share})
	}
	return out
}
