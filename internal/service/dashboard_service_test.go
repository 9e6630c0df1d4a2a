package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)

// seedPortfolio creates a store worth 1,665,000 TWD in assets against
// 400,000 TWD of debt:
//
//	AAPL     10 x 200 USD x 32.5 =    65,000
//	2330.TW  1000 x 600 TWD      =   600,000
//	Flat                         = 1,000,000 (real estate)
func seedPortfolio(t *testing.T, db *sql.DB) model.Store {
	t.Helper()

	store := testutil.NewStore().Build(t, db)
	testutil.NewHolding("AAPL").WithShares(10).WithMarketPrice(200).Build(t, db, store.ID, model.MarketUS)
	testutil.NewHolding("2330.TW").WithShares(1000).WithMarketPrice(590).WithOverridePrice(600).Build(t, db, store.ID, model.MarketTW)
	testutil.CreateFixedAsset(t, db, store.ID, "Flat", 1_000_000, model.CategoryRealEstate)
	testutil.CreateLiability(t, db, store.ID, "Mortgage", 400_000, 10_000)
	return store
}

func newClockedDashboard(t *testing.T, db *sql.DB, now time.Time) *service.DashboardService {
	t.Helper()
	return testutil.NewTestDashboardService(t, db).WithClock(func() time.Time { return now })
}

// TestDashboardService_GetDashboard tests the overview of a store.
//
// WHY: The dashboard is the one view every other figure is checked against.
// Totals, ranking and the privacy mask must all agree with the stored tables.
func TestDashboardService_GetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("totals and ranking", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		store := seedPortfolio(t, db)
		svc := newClockedDashboard(t, db, fixedNow)

		// Execute
		d, err := svc.GetDashboard(ctx, store.ID, false)

		// Assert
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		want := model.Summary{
			TotalAssets:      1_665_000,
			TotalLiabilities: 400_000,
			NetWorth:         1_265_000,
			MonthlyPayment:   10_000,
			FixedValue:       1_000_000,
		}
		if d.Summary != want {
			t.Errorf("Expected summary %+v, got %+v", want, d.Summary)
		}
		if d.Cards[0].Formatted != "$1,265,000" {
			t.Errorf("Expected formatted net worth, got %q", d.Cards[0].Formatted)
		}

		names := []string{}
		for _, a := range d.Assets {
			names = append(names, a.Name)
		}
		if len(names) != 3 || names[0] != "Flat" || names[1] != "2330.TW" || names[2] != "AAPL" {
			t.Errorf("Unexpected ranking: %v", names)
		}
		if d.Assets[0].Share <= 0.6 || d.Assets[0].Share >= 0.61 {
			t.Errorf("Unexpected share for Flat: %v", d.Assets[0].Share)
		}
		if len(d.US) != 1 || d.US[0].Value != 65_000 {
			t.Errorf("Unexpected US rows: %+v", d.US)
		}
		if d.CurrencyRate != testutil.TestUSDRate {
			t.Errorf("Expected rate %v, got %v", testutil.TestUSDRate, d.CurrencyRate)
		}
	})

	t.Run("privacy masks amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := seedPortfolio(t, db)
		svc := newClockedDashboard(t, db, fixedNow)

		d, err := svc.GetDashboard(ctx, store.ID, true)
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		for _, c := range d.Cards {
			if c.Formatted != service.PrivacyMask {
				t.Errorf("Card %s not masked: %q", c.Key, c.Formatted)
			}
		}
		for _, a := range d.Assets {
			if a.Formatted != service.PrivacyMask || a.Share != 0 {
				t.Errorf("Asset %s not masked: %+v", a.Name, a)
			}
		}
		if !d.Privacy {
			t.Error("Expected privacy flag to be set")
		}
	})

	t.Run("holding category drives allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := testutil.NewStore().Build(t, db)
		testutil.NewHolding("BTC-USD").WithShares(1).WithMarketPrice(1000).
			WithCategory(model.CategoryCrypto).Build(t, db, store.ID, model.MarketUS)
		svc := newClockedDashboard(t, db, fixedNow)

		d, err := svc.GetDashboard(ctx, store.ID, false)
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		if len(d.Allocation) != 1 || d.Allocation[0].Category != model.CategoryCrypto {
			t.Fatalf("Expected a single crypto slice, got %+v", d.Allocation)
		}
		if d.Allocation[0].Value != 32_500 {
			t.Errorf("Expected 32,500 TWD of crypto, got %v", d.Allocation[0].Value)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := testutil.NewStore().Build(t, db)
		svc := newClockedDashboard(t, db, fixedNow)

		d, err := svc.GetDashboard(ctx, store.ID, false)
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		if d.Summary.NetWorth != 0 || len(d.Assets) != 0 {
			t.Errorf("Expected an empty dashboard, got %+v", d)
		}
		if d.Cards[0].Formatted != "$0" {
			t.Errorf("Expected $0, got %q", d.Cards[0].Formatted)
		}
	})
}

// TestDashboardService_History tests the daily history point.
//
// WHY: Viewing the dashboard several times a day must leave exactly one point
// per day, holding the first values seen that day.
func TestDashboardService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("one point per day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := seedPortfolio(t, db)
		svc := newClockedDashboard(t, db, fixedNow)

		if _, err := svc.GetDashboard(ctx, store.ID, false); err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		testutil.CreateLiability(t, db, store.ID, "Card", 5_000, 0)
		if _, err := svc.GetDashboard(ctx, store.ID, false); err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}

		history, err := svc.GetHistory(ctx, store.ID)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 history point, got %d", len(history))
		}
		if history[0].NetWorth != 1_265_000 {
			t.Errorf("Expected the first value of the day, got %v", history[0].NetWorth)
		}
		if !history[0].Date.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Unexpected date: %v", history[0].Date)
		}
	})

	t.Run("record snapshot reports whether it wrote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		store := seedPortfolio(t, db)
		svc := newClockedDashboard(t, db, fixedNow)

		_, written, err := svc.RecordSnapshot(ctx, store.ID)
		if err != nil || !written {
			t.Fatalf("Expected first snapshot to be written, got written=%v err=%v", written, err)
		}
		_, written, err = svc.RecordSnapshot(ctx, store.ID)
		if err != nil || written {
			t.Errorf("Expected second snapshot to be skipped, got written=%v err=%v", written, err)
		}

		next := newClockedDashboard(t, db, fixedNow.AddDate(0, 0, 1))
		if _, written, _ := next.RecordSnapshot(ctx, store.ID); !written {
			t.Error("Expected a new point on the next day")
		}

		history, _ := svc.GetHistory(ctx, store.ID)
		if len(history) != 2 || !history[0].Date.Before(history[1].Date) {
			t.Errorf("Expected 2 points oldest first, got %+v", history)
		}
	})

	t.Run("history of another store is not visible", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mine := testutil.NewStore().WithID("store-mine").Build(t, db)
		other := testutil.NewStore().WithID("store-other").Build(t, db)
		testutil.CreateHistoryPoint(t, db, mine.ID, fixedNow.AddDate(0, 0, -1), 100)
		testutil.CreateHistoryPoint(t, db, mine.ID, fixedNow.AddDate(0, 0, -2), 90)
		testutil.CreateHistoryPoint(t, db, other.ID, fixedNow, 5)
		svc := newClockedDashboard(t, db, fixedNow)

		history, err := svc.GetHistory(ctx, mine.ID)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("Expected 2 points, got %d", len(history))
		}
		if history[0].NetWorth != 90 || history[1].NetWorth != 100 {
			t.Errorf("Expected points oldest first, got %+v", history)
		}
	})

	t.Run("snapshot all stores", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		seedPortfolio(t, db)
		seedPortfolio(t, db)
		svc := newClockedDashboard(t, db, fixedNow)

		n, err := svc.SnapshotAll(ctx)
		if err != nil {
			t.Fatalf("SnapshotAll() returned unexpected error: %v", err)
		}
		if n != 2 {
			t.Errorf("Expected 2 points written, got %d", n)
		}

		n, err = svc.SnapshotAll(ctx)
		if err != nil || n != 0 {
			t.Errorf("Expected a rerun to write nothing, got n=%d err=%v", n, err)
		}
	})
}
