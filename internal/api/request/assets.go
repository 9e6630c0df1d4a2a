package request

import (
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

// HoldingRow is one row of a holdings table as sent by the editor.
type HoldingRow struct {
	Symbol        string  `json:"symbol" validate:"max=32"`
	DisplayName   string  `json:"displayName" validate:"max=200"`
	Shares        float64 `json:"shares" validate:"gte=0"`
	Category      string  `json:"category" validate:"max=50"`
	OverridePrice float64 `json:"overridePrice" validate:"gte=0"`
	MarketPrice   float64 `json:"marketPrice" validate:"gte=0"`
}

// SaveHoldingsRequest replaces a holdings table.
type SaveHoldingsRequest struct {
	Rows []HoldingRow `json:"rows" validate:"dive"`
}

// Holdings converts the rows; categories are resolved later against the market.
func (r SaveHoldingsRequest) Holdings() []model.Holding {
	out := make([]model.Holding, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = model.Holding{
			Symbol:        row.Symbol,
			DisplayName:   row.DisplayName,
			Shares:        row.Shares,
			Category:      model.Category(row.Category),
			OverridePrice: row.OverridePrice,
			MarketPrice:   row.MarketPrice,
		}
	}
	return out
}

// FixedAssetRow is one row of the fixed asset table.
type FixedAssetRow struct {
	Name         string  `json:"name" validate:"max=200"`
	CurrentValue float64 `json:"currentValue" validate:"gte=0"`
	Category     string  `json:"category" validate:"max=50"`
}

// SaveFixedAssetsRequest replaces the fixed asset table.
type SaveFixedAssetsRequest struct {
	Rows []FixedAssetRow `json:"rows" validate:"dive"`
}

func (r SaveFixedAssetsRequest) FixedAssets() []model.FixedAsset {
	out := make([]model.FixedAsset, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = model.FixedAsset{
			Name:         row.Name,
			CurrentValue: row.CurrentValue,
			Category:     model.Category(row.Category),
		}
	}
	return out
}

// LiabilityRow is one row of the liability table.
type LiabilityRow struct {
	Name           string  `json:"name" validate:"max=200"`
	Amount         float64 `json:"amount" validate:"gte=0"`
	MonthlyPayment float64 `json:"monthlyPayment" validate:"gte=0"`
}

// SaveLiabilitiesRequest replaces the liability table.
type SaveLiabilitiesRequest struct {
	Rows []LiabilityRow `json:"rows" validate:"dive"`
}

func (r SaveLiabilitiesRequest) Liabilities() []model.Liability {
	out := make([]model.Liability, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = model.Liability(row)
	}
	return out
}

// SettingsRequest overwrites the FIRE settings.
type SettingsRequest struct {
	Expense    float64 `json:"expense" validate:"gte=0"`
	Age        int     `json:"age" validate:"gte=0,lte=120"`
	Savings    float64 `json:"savings" validate:"gte=0"`
	ReturnRate float64 `json:"returnRate" validate:"gte=-100,lte=100"`
}

func (r SettingsRequest) Settings() model.Settings {
	return model.Settings(r)
}
