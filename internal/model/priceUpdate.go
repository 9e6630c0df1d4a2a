package model

// PriceRefreshResponse is the result of refreshing the market prices of both
// holdings tables. Success is true if at least one holding got a new price.
type PriceRefreshResponse struct {
	Success      bool                `json:"success"`      // true if at least one holding was updated
	Updated      []UpdatedHolding    `json:"updated"`      // Holdings that received a price, in table order
	Errors       []UpdatedHoldingErr `json:"errors"`       // Holdings whose price could not be fetched
	TotalUpdated int                 `json:"totalUpdated"` // Count of updated holdings
	TotalErrors  int                 `json:"totalErrors"`  // Count of failed holdings
}

// UpdatedHolding is a holding that received a new market price.
type UpdatedHolding struct {
	Market      Market  `json:"market"`
	Symbol      string  `json:"symbol"`
	DisplayName string  `json:"displayName"`
	Price       float64 `json:"price"`
}

// UpdatedHoldingErr is a holding that kept its previous price.
type UpdatedHoldingErr struct {
	Market Market `json:"market"`
	Symbol string `json:"symbol"`
	Error  string `json:"error"`
}
