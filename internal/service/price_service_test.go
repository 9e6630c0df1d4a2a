package service_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/testutil"
)

// TestPriceService_RefreshPrices tests the price refresh across both markets.
//
// WHY: A refresh walks every holding one at a time. One failing ticker must not
// lose the price the user last saw, and rows without a display name should end
// up with something readable.
func TestPriceService_RefreshPrices(t *testing.T) {
	ctx := context.Background()

	t.Run("updates prices in table order and keeps failed ones", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		store := testutil.NewStore().Build(t, db)
		testutil.NewHolding("AAPL").WithShares(10).Build(t, db, store.ID, model.MarketUS)
		testutil.NewHolding("DELISTED").WithMarketPrice(5).WithDisplayName("Gone Corp").Build(t, db, store.ID, model.MarketUS)
		testutil.NewHolding("2330.TW").WithShares(1000).Build(t, db, store.ID, model.MarketTW)

		quoter := testutil.NewMockQuoter().
			WithPrice("AAPL", 200).
			WithName("AAPL", "Apple Inc.").
			WithPrice("2330.TW", 600)
		svc := testutil.NewTestPriceServiceWithMockQuoter(t, db, quoter)

		// Execute
		resp, err := svc.RefreshPrices(ctx, store.ID)

		// Assert
		if err != nil {
			t.Fatalf("RefreshPrices() returned unexpected error: %v", err)
		}
		if !slices.Equal(quoter.Calls, []string{"AAPL", "DELISTED", "2330.TW"}) {
			t.Errorf("Unexpected lookup order: %v", quoter.Calls)
		}
		if !resp.Success || resp.TotalUpdated != 2 || resp.TotalErrors != 1 {
			t.Errorf("Unexpected totals: %+v", resp)
		}
		if resp.Errors[0].Symbol != "DELISTED" || resp.Errors[0].Market != model.MarketUS ||
			resp.Errors[0].Error != service.NoPriceAvailable {
			t.Errorf("Unexpected error entry: %+v", resp.Errors[0])
		}

		assets := testutil.NewTestAssetService(t, db)
		us, _ := assets.GetHoldings(ctx, store.ID, model.MarketUS)
		if us[0].MarketPrice != 200 || us[0].DisplayName != "Apple Inc." {
			t.Errorf("Expected AAPL to be updated, got %+v", us[0])
		}
		if us[1].MarketPrice != 5 || us[1].DisplayName != "Gone Corp" {
			t.Errorf("Expected DELISTED to keep its price, got %+v", us[1])
		}

		tw, _ := assets.GetHoldings(ctx, store.ID, model.MarketTW)
		if tw[0].MarketPrice != 600 {
			t.Errorf("Expected 2330.TW at 600, got %v", tw[0].MarketPrice)
		}
		if tw[0].DisplayName != "2330.TW" {
			t.Errorf("Expected symbol as fallback name, got %q", tw[0].DisplayName)
		}
	})

	t.Run("no holdings is not a success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := testutil.NewStore().Build(t, db)
		svc := testutil.NewTestPriceServiceWithMockQuoter(t, db, testutil.NewMockQuoter())

		resp, err := svc.RefreshPrices(ctx, store.ID)
		if err != nil {
			t.Fatalf("RefreshPrices() returned unexpected error: %v", err)
		}
		if resp.Success || resp.TotalUpdated != 0 {
			t.Errorf("Unexpected response: %+v", resp)
		}
		if resp.Updated == nil || resp.Errors == nil {
			t.Error("Expected empty, non-nil result lists")
		}
	})

	t.Run("cancelled context stops the refresh", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := testutil.NewStore().Build(t, db)
		testutil.NewHolding("AAPL").Build(t, db, store.ID, model.MarketUS)
		quoter := testutil.NewMockQuoter().WithPrice("AAPL", 1)
		svc := testutil.NewTestPriceServiceWithMockQuoter(t, db, quoter)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.RefreshPrices(cctx, store.ID)
		if err == nil {
			t.Fatal("Expected an error for a cancelled context")
		}
		if len(quoter.Calls) != 0 {
			t.Errorf("Expected no lookups, got %v", quoter.Calls)
		}
	})

	t.Run("unknown store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceServiceWithMockQuoter(t, db, testutil.NewMockQuoter())

		_, err := svc.RefreshPrices(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrStoreUnreachable) {
			t.Errorf("Expected ErrStoreUnreachable, got %v", err)
		}
	})
}
