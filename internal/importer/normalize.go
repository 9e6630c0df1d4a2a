// Package importer maps user supplied CSV and spreadsheet files onto the
// canonical holdings, fixed asset and liability tables.
package importer

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// Kind is the table an import is destined for.
type Kind string

const (
	KindUSStock    Kind = "us_stock"
	KindTWStock    Kind = "tw_stock"
	KindFixedAsset Kind = "fixed_asset"
	KindLiability  Kind = "liability"
)

// ParseKind validates an import kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindUSStock, KindTWStock, KindFixedAsset, KindLiability:
		return k, nil
	}
	return "", apperrors.ErrInvalidImportKind
}

// Market returns the holdings table of a stock import.
func (k Kind) Market() (model.Market, bool) {
	switch k {
	case KindUSStock:
		return model.MarketUS, true
	case KindTWStock:
		return model.MarketTW, true
	}
	return "", false
}

// Table is a parsed file: a header row followed by data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Canonical is the result of a successful import. Only the slice matching Kind is set.
type Canonical struct {
	Kind        Kind
	Holdings    []model.Holding
	FixedAssets []model.FixedAsset
	Liabilities []model.Liability
}

// Len is the number of imported rows.
func (c Canonical) Len() int {
	return len(c.Holdings) + len(c.FixedAssets) + len(c.Liabilities)
}

// field is a logical column: its name as reported in errors and the header
// aliases it may appear under, lower case.
type field struct {
	name    string
	aliases []string
}

var (
	fieldTicker    = field{"代號/ticker", []string{"ticker", "symbol", "代號", "股票代號"}}
	fieldShares    = field{"股數/shares", []string{"shares", "quantity", "股數", "數量", "qty"}}
	fieldPrice     = field{"自訂價格/price", []string{"price", "cost", "自訂價格", "成本"}}
	fieldAssetName = field{"資產項目/name", []string{"item", "name", "資產項目", "名稱"}}
	fieldValue     = field{"現值/value", []string{"value", "amount", "現值", "金額"}}
	fieldDebtName  = field{"負債項目/name", []string{"item", "name", "負債項目", "名稱"}}
	fieldAmount    = field{"金額/amount", []string{"amount", "金額"}}
	fieldMonthly   = field{"每月扣款/monthly", []string{"monthly", "payment", "每月扣款"}}
)

// columns resolves logical fields against a header row.
type columns []string

func newColumns(headers []string) columns {
	c := make(columns, len(headers))
	for i, h := range headers {
		c[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return c
}

// find returns the index of the first header, in file order, that is one of f's aliases.
func (c columns) find(f field) int {
	for i, h := range c {
		if slices.Contains(f.aliases, h) {
			return i
		}
	}
	return -1
}

func (c columns) require(f field) (int, error) {
	if i := c.find(f); i >= 0 {
		return i, nil
	}
	return -1, &apperrors.MissingColumnError{Field: f.name}
}

// Normalize converts a parsed table into canonical rows for kind.
//
// Header matching is case insensitive. A missing mandatory column rejects the
// whole import with a MissingColumnError; optional columns default to 0.
// Cells that do not parse as numbers count as 0. Fully blank rows are skipped.
func Normalize(t Table, kind Kind) (Canonical, error) {
	cols := newColumns(t.Headers)
	out := Canonical{Kind: kind}

	switch kind {
	case KindUSStock, KindTWStock:
		market, _ := kind.Market()
		ticker, err := cols.require(fieldTicker)
		if err != nil {
			return Canonical{}, err
		}
		shares, err := cols.require(fieldShares)
		if err != nil {
			return Canonical{}, err
		}
		price := cols.find(fieldPrice)

		out.Holdings = []model.Holding{}
		for _, row := range dataRows(t.Rows) {
			out.Holdings = append(out.Holdings, model.Holding{
				Symbol:        strings.ToUpper(cell(row, ticker)),
				Shares:        number(cell(row, shares)),
				Category:      market.DefaultCategory(),
				OverridePrice: number(cell(row, price)),
			})
		}

	case KindFixedAsset:
		name, err := cols.require(fieldAssetName)
		if err != nil {
			return Canonical{}, err
		}
		value, err := cols.require(fieldValue)
		if err != nil {
			return Canonical{}, err
		}

		out.FixedAssets = []model.FixedAsset{}
		for _, row := range dataRows(t.Rows) {
			out.FixedAssets = append(out.FixedAssets, model.FixedAsset{
				Name:         cell(row, name),
				CurrentValue: number(cell(row, value)),
				Category:     model.CategoryFixedAsset,
			})
		}

	case KindLiability:
		name, err := cols.require(fieldDebtName)
		if err != nil {
			return Canonical{}, err
		}
		amount, err := cols.require(fieldAmount)
		if err != nil {
			return Canonical{}, err
		}
		monthly := cols.find(fieldMonthly)

		out.Liabilities = []model.Liability{}
		for _, row := range dataRows(t.Rows) {
			out.Liabilities = append(out.Liabilities, model.Liability{
				Name:           cell(row, name),
				Amount:         number(cell(row, amount)),
				MonthlyPayment: number(cell(row, monthly)),
			})
		}

	default:
		return Canonical{}, apperrors.ErrInvalidImportKind
	}

	return out, nil
}

// dataRows drops rows whose cells are all blank.
func dataRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if slices.ContainsFunc(r, func(c string) bool { return strings.TrimSpace(c) != "" }) {
			out = append(out, r)
		}
	}
	return out
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number parses a numeric cell permissively. Thousands separators are ignored
// and anything that still fails to parse, or is not finite, is 0.
func number(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
