// Package forecast holds the FIRE arithmetic: the weighted expected return of a
// portfolio and the year by year wealth projection against spending targets.
package forecast

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// DefaultReturnRate is returned when there is nothing to weight.
const DefaultReturnRate = 5.0

// fallbackCategoryRate applies to categories without an entry in ExpectedReturns.
const fallbackCategoryRate = 3.0

// ExpectedReturns is the assumed long term annual return, in percent, per category.
var ExpectedReturns = map[model.Category]float64{
	model.CategoryUSStock:    10.0,
	model.CategoryTWStock:    8.0,
	model.CategoryCrypto:     25.0,
	model.CategoryCash:       1.0,
	model.CategoryRealEstate: 3.0,
	model.CategoryFixedAsset: 3.0,
}

// ExpectedReturn looks up the assumed return of a category.
func ExpectedReturn(c model.Category) float64 {
	if r, ok := ExpectedReturns[c]; ok {
		return r
	}
	return fallbackCategoryRate
}

// Estimate computes the value weighted expected annual return of assets and a
// markdown explanation of how it was derived.
//
// When includeFixed is false, real estate and other fixed assets are left out of
// both the weights and the total. The result is rounded to two decimals and does
// not depend on the order of assets.
func Estimate(assets []model.ValuedAsset, includeFixed bool) (float64, string) {
	header := "**Estimate excludes real estate**"
	if includeFixed {
		header = "**Estimate includes real estate**"
	}

	sums := make(map[model.Category]decimal.Decimal)
	total := decimal.Zero
	for _, a := range assets {
		if !includeFixed && a.Category.IsFixed() {
			continue
		}
		v := decimal.NewFromFloat(a.Value)
		sums[a.Category] = sums[a.Category].Add(v)
		total = total.Add(v)
	}

	if total.IsZero() {
		return DefaultReturnRate, header + "\n\nNo assets to weight, using the default " +
			formatRate(DefaultReturnRate) + "%."
	}

	lines := []string{header, ""}
	weighted := decimal.Zero
	for _, c := range sortedCategories(sums) {
		rate := ExpectedReturn(c)
		weight := sums[c].Div(total)
		weighted = weighted.Add(decimal.NewFromFloat(rate).Mul(weight))
		lines = append(lines, fmt.Sprintf("- **%s**: %s%% × %s%%",
			c.Label(), weight.Shift(2).StringFixed(1), formatRate(rate)))
	}

	return weighted.Round(2).InexactFloat64(), strings.Join(lines, "\n")
}

// sortedCategories orders categories the way model.Categories lists them, with
// unknown categories after, alphabetically.
func sortedCategories(sums map[model.Category]decimal.Decimal) []model.Category {
	keys := make([]model.Category, 0, len(sums))
	for c := range sums {
		keys = append(keys, c)
	}
	slices.SortFunc(keys, func(a, b model.Category) int {
		ia, ib := slices.Index(model.Categories, a), slices.Index(model.Categories, b)
		if ia < 0 {
			ia = len(model.Categories)
		}
		if ib < 0 {
			ib = len(model.Categories)
		}
		if ia != ib {
			return ia - ib
		}
		return strings.Compare(string(a), string(b))
	})
	return keys
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
