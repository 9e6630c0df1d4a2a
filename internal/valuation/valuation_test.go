package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

func TestValuate(t *testing.T) {
	us := []model.Holding{
		{Symbol: "AAPL", Shares: 10, MarketPrice: 200, Category: model.CategoryUSStock},
		{Symbol: "BTC-USD", Shares: 0.5, OverridePrice: 60000, MarketPrice: 1, Category: model.CategoryCrypto},
		{Symbol: "ZERO", Shares: 0, MarketPrice: 100},
		{Symbol: "", Shares: 5, MarketPrice: 100},
		{Symbol: "None", Shares: 5, MarketPrice: 100},
	}
	tw := []model.Holding{
		{Symbol: "2330.TW", Shares: 1000, MarketPrice: 600, Category: model.CategoryTWStock},
		{Symbol: "0050.TW", Shares: 10, MarketPrice: -3},
	}
	fixed := []model.FixedAsset{
		{Name: "Apartment", CurrentValue: 12_000_000, Category: model.CategoryRealEstate},
		{Name: "  ", CurrentValue: 100},
		{Name: "Car", CurrentValue: 0},
	}

	assets, total := Valuate(us, tw, fixed, 32.5)

	require.Len(t, assets, 4)
	assert.Equal(t, "AAPL", assets[0].Name)
	assert.InDelta(t, 65000, assets[0].Value, 1e-9)
	assert.Equal(t, model.CategoryCrypto, assets[1].Category)
	assert.InDelta(t, 975000, assets[1].Value, 1e-9)
	assert.Equal(t, "2330.TW", assets[2].Name)
	assert.InDelta(t, 600000, assets[2].Value, 1e-9)
	assert.Equal(t, model.CategoryRealEstate, assets[3].Category)

	t.Run("never emits non-positive or blank rows", func(t *testing.T) {
		for _, a := range assets {
			assert.Greater(t, a.Value, 0.0)
			assert.NotEmpty(t, a.Name)
			assert.NotEqual(t, "None", a.Name)
		}
	})

	t.Run("total equals sum of emitted values", func(t *testing.T) {
		sum := 0.0
		for _, a := range assets {
			sum += a.Value
		}
		assert.Equal(t, sum, total)
	})
}

func TestValuate_DefaultsMissingCategories(t *testing.T) {
	assets, _ := Valuate(
		[]model.Holding{{Symbol: "MSFT", Shares: 1, MarketPrice: 10}},
		[]model.Holding{{Symbol: "2317.TW", Shares: 1, MarketPrice: 10}},
		[]model.FixedAsset{{Name: "Land", CurrentValue: 10}},
		1,
	)

	require.Len(t, assets, 3)
	assert.Equal(t, model.CategoryUSStock, assets[0].Category)
	assert.Equal(t, model.CategoryTWStock, assets[1].Category)
	assert.Equal(t, model.CategoryFixedAsset, assets[2].Category)
}

func TestValuate_Empty(t *testing.T) {
	assets, total := Valuate(nil, nil, nil, 32.5)
	assert.Empty(t, assets)
	assert.Zero(t, total)
}

func TestSummarize(t *testing.T) {
	assets := []model.ValuedAsset{
		{Name: "AAPL", Category: model.CategoryUSStock, Value: 1_000_000},
		{Name: "House", Category: model.CategoryRealEstate, Value: 5_000_000},
	}
	liabilities := []model.Liability{
		{Name: "Mortgage", Amount: 3_000_000, MonthlyPayment: 20_000},
		{Name: "Card", Amount: 10_000, MonthlyPayment: 10_000},
	}

	s := Summarize(assets, 6_000_000, liabilities)

	assert.Equal(t, 6_000_000.0, s.TotalAssets)
	assert.Equal(t, 3_010_000.0, s.TotalLiabilities)
	assert.Equal(t, 2_990_000.0, s.NetWorth)
	assert.Equal(t, 30_000.0, s.MonthlyPayment)
	assert.Equal(t, 5_000_000.0, s.FixedValue)
}

func TestValueHoldings_Shares(t *testing.T) {
	rows := []model.Holding{
		{Symbol: "A", Shares: 1, MarketPrice: 30},
		{Symbol: "B", Shares: 1, MarketPrice: 10},
		{Symbol: "C", Shares: 0, MarketPrice: 10},
	}

	valued, total := ValueHoldings(rows, 1)

	assert.Equal(t, 40.0, total)
	require.Len(t, valued, 3)
	assert.InDelta(t, 0.75, valued[0].Share, 1e-12)
	assert.InDelta(t, 0.25, valued[1].Share, 1e-12)
	assert.Zero(t, valued[2].Share)
}

func TestValueLiabilities_ZeroTotal(t *testing.T) {
	valued, total := ValueLiabilities([]model.Liability{{Name: "Nothing"}})
	assert.Zero(t, total)
	assert.Zero(t, valued[0].Share)
}

func TestAllocate(t *testing.T) {
	assets := []model.ValuedAsset{
		{Name: "2330.TW", Category: model.CategoryTWStock, Value: 100},
		{Name: "AAPL", Category: model.CategoryUSStock, Value: 200},
		{Name: "MSFT", Category: model.CategoryUSStock, Value: 100},
	}

	alloc := Allocate(assets, 400)

	require.Len(t, alloc, 2)
	assert.Equal(t, model.CategoryUSStock, alloc[0].Category)
	assert.Equal(t, 300.0, alloc[0].Value)
	assert.InDelta(t, 0.75, alloc[0].Share, 1e-12)
	assert.Equal(t, model.CategoryTWStock, alloc[1].Category)
}
