package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/testutil"
)

// TestAssetService_SaveHoldings tests whole-table replacement of a holdings table.
//
// WHY: Saving replaces the table as a whole, so rows with blank keys must be
// dropped and the stored order must match the submitted order.
func TestAssetService_SaveHoldings(t *testing.T) {
	ctx := context.Background()

	t.Run("drops blank keys and normalizes rows", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)
		store := testutil.NewStore().Build(t, db)

		input := []model.Holding{
			{Symbol: " aapl ", Shares: 10},
			{Symbol: "", Shares: 5},
			{Symbol: "nan", Shares: 5},
			{Symbol: "0", Shares: 5},
			{Symbol: "BTC-USD", Shares: 0.5, Category: "虛擬貨幣"},
		}

		// Execute
		saved, err := svc.SaveHoldings(ctx, store.ID, model.MarketUS, input)

		// Assert
		if err != nil {
			t.Fatalf("SaveHoldings() returned unexpected error: %v", err)
		}
		if len(saved) != 2 {
			t.Fatalf("Expected 2 holdings saved, got %d", len(saved))
		}

		got, err := svc.GetHoldings(ctx, store.ID, model.MarketUS)
		if err != nil {
			t.Fatalf("GetHoldings() returned unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 holdings stored, got %d", len(got))
		}
		if got[0].Symbol != "AAPL" || got[0].Category != model.CategoryUSStock {
			t.Errorf("Unexpected first holding: %+v", got[0])
		}
		if got[1].Symbol != "BTC-USD" || got[1].Category != model.CategoryCrypto {
			t.Errorf("Unexpected second holding: %+v", got[1])
		}
	})

	t.Run("replaces the previous table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)
		store := testutil.NewStore().Build(t, db)
		testutil.NewHolding("2330.TW").WithShares(1000).Build(t, db, store.ID, model.MarketTW)

		_, err := svc.SaveHoldings(ctx, store.ID, model.MarketTW, []model.Holding{{Symbol: "0050.TW", Shares: 20}})
		if err != nil {
			t.Fatalf("SaveHoldings() returned unexpected error: %v", err)
		}

		got, _ := svc.GetHoldings(ctx, store.ID, model.MarketTW)
		if len(got) != 1 || got[0].Symbol != "0050.TW" {
			t.Errorf("Expected only 0050.TW, got %+v", got)
		}
	})

	t.Run("rejects duplicate symbols and keeps the old table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)
		store := testutil.NewStore().Build(t, db)
		testutil.NewHolding("MSFT").Build(t, db, store.ID, model.MarketUS)

		_, err := svc.SaveHoldings(ctx, store.ID, model.MarketUS, []model.Holding{{Symbol: "AAPL"}, {Symbol: "aapl"}})
		if !errors.Is(err, apperrors.ErrDuplicateSymbol) {
			t.Fatalf("Expected ErrDuplicateSymbol, got %v", err)
		}

		got, _ := svc.GetHoldings(ctx, store.ID, model.MarketUS)
		if len(got) != 1 || got[0].Symbol != "MSFT" {
			t.Errorf("Expected table to be unchanged, got %+v", got)
		}
	})

	t.Run("unknown store is unreachable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)

		_, err := svc.GetHoldings(ctx, testutil.MakeID(), model.MarketUS)
		if !errors.Is(err, apperrors.ErrStoreUnreachable) {
			t.Errorf("Expected ErrStoreUnreachable, got %v", err)
		}
	})
}

func TestAssetService_DeleteHolding(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)
	store := testutil.NewStore().Build(t, db)
	testutil.NewHolding("AAPL").Build(t, db, store.ID, model.MarketUS)
	testutil.NewHolding("MSFT").Build(t, db, store.ID, model.MarketUS)

	if err := svc.DeleteHolding(ctx, store.ID, model.MarketUS, "aapl"); err != nil {
		t.Fatalf("DeleteHolding() returned unexpected error: %v", err)
	}
	got, _ := svc.GetHoldings(ctx, store.ID, model.MarketUS)
	if len(got) != 1 || got[0].Symbol != "MSFT" {
		t.Errorf("Expected only MSFT left, got %+v", got)
	}

	err := svc.DeleteHolding(ctx, store.ID, model.MarketUS, "AAPL")
	if !errors.Is(err, apperrors.ErrHoldingNotFound) {
		t.Errorf("Expected ErrHoldingNotFound, got %v", err)
	}
}

func TestAssetService_FixedAssetsAndLiabilities(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)
	store := testutil.NewStore().Build(t, db)

	assets, err := svc.SaveFixedAssets(ctx, store.ID, []model.FixedAsset{
		{Name: "Apartment", CurrentValue: 12_000_000, Category: "房產"},
		{Name: "  ", CurrentValue: 1},
		{Name: "Car", CurrentValue: 500_000},
	})
	if err != nil {
		t.Fatalf("SaveFixedAssets() returned unexpected error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("Expected 2 fixed assets, got %d", len(assets))
	}
	if assets[0].Category != model.CategoryRealEstate || assets[1].Category != model.CategoryFixedAsset {
		t.Errorf("Unexpected categories: %+v", assets)
	}

	liabilities, err := svc.SaveLiabilities(ctx, store.ID, []model.Liability{
		{Name: "Mortgage", Amount: 8_000_000, MonthlyPayment: 35_000},
		{Name: "nan", Amount: 1},
	})
	if err != nil {
		t.Fatalf("SaveLiabilities() returned unexpected error: %v", err)
	}
	if len(liabilities) != 1 {
		t.Errorf("Expected 1 liability, got %d", len(liabilities))
	}

	stored, _ := svc.GetLiabilities(ctx, store.ID)
	if len(stored) != 1 || stored[0].MonthlyPayment != 35_000 {
		t.Errorf("Unexpected stored liabilities: %+v", stored)
	}
}

// TestAssetService_Settings tests the settings singleton.
//
// WHY: A store that never saved settings must still produce usable defaults
// for the projection, and a save must overwrite every key.
func TestAssetService_Settings(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)
	store := testutil.NewStore().Build(t, db)

	got, err := svc.GetSettings(ctx, store.ID)
	if err != nil {
		t.Fatalf("GetSettings() returned unexpected error: %v", err)
	}
	if got != model.DefaultSettings() {
		t.Errorf("Expected defaults, got %+v", got)
	}

	want := model.Settings{Expense: 600_000, Age: 35, Savings: 400_000, ReturnRate: 7.25}
	if _, err := svc.SaveSettings(ctx, store.ID, want); err != nil {
		t.Fatalf("SaveSettings() returned unexpected error: %v", err)
	}
	got, _ = svc.GetSettings(ctx, store.ID)
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
