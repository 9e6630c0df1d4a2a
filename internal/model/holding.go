package model

// Market identifies which holdings table a position belongs to.
type Market string

const (
	// MarketUS holds US listed stocks and crypto, priced in USD.
	MarketUS Market = "us"
	// MarketTW holds Taiwan listed stocks, priced in TWD.
	MarketTW Market = "tw"
)

// DefaultCategory is the category given to rows of this market that arrive without one.
func (m Market) DefaultCategory() Category {
	if m == MarketTW {
		return CategoryTWStock
	}
	return CategoryUSStock
}

// Holding is an equity or crypto position in one of the holdings tables.
// Symbol is unique within a table.
type Holding struct {
	Symbol        string   `json:"symbol"`
	DisplayName   string   `json:"displayName"`
	Shares        float64  `json:"shares"`
	Category      Category `json:"category"`
	OverridePrice float64  `json:"overridePrice"`
	MarketPrice   float64  `json:"marketPrice"`
}

// EffectivePrice is the override price when one is set, otherwise the last market price.
func (h Holding) EffectivePrice() float64 {
	if h.OverridePrice > 0 {
		return h.OverridePrice
	}
	return h.MarketPrice
}

// FixedAsset is a non-traded asset carried at a user supplied value.
type FixedAsset struct {
	Name         string   `json:"name"`
	CurrentValue float64  `json:"currentValue"`
	Category     Category `json:"category"`
}

// Liability is an outstanding debt and its monthly payment.
type Liability struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
}

// ValuedAsset is a holding or fixed asset converted to TWD.
// It is derived on every request and never persisted.
type ValuedAsset struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Value    float64  `json:"value"`
}

// ValuedRow is one row of a table together with its TWD value and its share of
// the table total, as shown by the editors.
type ValuedRow[T any] struct {
	Row   T       `json:"row"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}
