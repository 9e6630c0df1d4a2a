package model

import "strings"

// Category classifies a holding or fixed asset. It is set once when a row is
// created or imported and never re-derived from free text afterwards.
type Category string

const (
	CategoryUSStock    Category = "us_stock"
	CategoryTWStock    Category = "tw_stock"
	CategoryCrypto     Category = "crypto"
	CategoryCash       Category = "cash"
	CategoryRealEstate Category = "real_estate"
	CategoryFixedAsset Category = "fixed_asset"
	CategoryOther      Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryUSStock,
	CategoryTWStock,
	CategoryCrypto,
	CategoryCash,
	CategoryRealEstate,
	CategoryFixedAsset,
	CategoryOther,
}

// legacyLabels maps the labels used by the spreadsheet era of the dashboard.
// Order matters: the first matching keyword wins.
var legacyLabels = []struct {
	keyword  string
	category Category
}{
	{"美股", CategoryUSStock},
	{"台股", CategoryTWStock},
	{"虛擬貨幣", CategoryCrypto},
	{"現金", CategoryCash},
	{"房產", CategoryRealEstate},
	{"地產", CategoryRealEstate},
	{"固定", CategoryFixedAsset},
}

// ParseCategory converts a stored or user supplied label into a Category.
// Canonical names are accepted as is; legacy labels are matched by keyword.
// An empty label yields fallback; anything unrecognised is CategoryOther.
func ParseCategory(label string, fallback Category) Category {
	label = strings.TrimSpace(label)
	if label == "" {
		return fallback
	}
	lower := Category(strings.ToLower(label))
	for _, c := range Categories {
		if c == lower {
			return c
		}
	}
	for _, l := range legacyLabels {
		if strings.Contains(label, l.keyword) {
			return l.category
		}
	}
	return CategoryOther
}

// IsFixed reports whether the category counts as real estate or another
// illiquid fixed asset for projections and return estimates.
func (c Category) IsFixed() bool {
	return c == CategoryRealEstate || c == CategoryFixedAsset
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Label returns the human readable name used in reports.
func (c Category) Label() string {
	switch c {
	case CategoryUSStock:
		return "US Stocks"
	case CategoryTWStock:
		return "TW Stocks"
	case CategoryCrypto:
		return "Crypto"
	case CategoryCash:
		return "Cash"
	case CategoryRealEstate:
		return "Real Estate"
	case CategoryFixedAsset:
		return "Fixed Assets"
	default:
		return "Other"
	}
}
