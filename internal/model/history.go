package model

import "time"

// HistoryPoint is the daily net-worth snapshot of a store.
// At most one point exists per store and calendar day.
type HistoryPoint struct {
	Date             time.Time `json:"date"`
	NetWorth         float64   `json:"netWorth"`
	TotalAssets      float64   `json:"totalAssets"`
	TotalLiabilities float64   `json:"totalLiabilities"`
	MonthlyPayment   float64   `json:"monthlyPayment"`
}

// Summary is the set of headline totals for a store.
type Summary struct {
	TotalAssets      float64 `json:"totalAssets"`
	TotalLiabilities float64 `json:"totalLiabilities"`
	NetWorth         float64 `json:"netWorth"`
	MonthlyPayment   float64 `json:"monthlyPayment"`
	// FixedValue is the part of TotalAssets held in real estate and other fixed assets.
	FixedValue float64 `json:"fixedValue"`
}

// Snapshot converts the summary into the history point for the given day.
func (s Summary) Snapshot(day time.Time) HistoryPoint {
	return HistoryPoint{
		Date:             time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		NetWorth:         s.NetWorth,
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		MonthlyPayment:   s.MonthlyPayment,
	}
}
