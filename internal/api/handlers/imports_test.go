package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/testutil"
)

func TestImportHandler_Import(t *testing.T) {
	setup := func(t *testing.T) (*ImportHandler, model.Store, func() []model.Holding) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		store := testutil.NewStore().Build(t, db)
		assets := testutil.NewTestAssetService(t, db)
		list := func() []model.Holding {
			h, _ := assets.GetHoldings(t.Context(), store.ID, model.MarketUS)
			return h
		}
		return NewImportHandler(testutil.NewTestImportService(t, db)), store, list
	}

	t.Run("imports a csv", func(t *testing.T) {
		handler, store, list := setup(t)

		req := testutil.NewUploadRequest(t, "/api/import/us_stock", "us.csv", []byte("ticker,shares\nAAPL,10\nVT,3\n"))
		req = testutil.WithSession(testutil.WithURLParams(req, map[string]string{"kind": "us_stock"}), "u", store.ID)
		w := httptest.NewRecorder()
		handler.Import(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		resp := testutil.DecodeJSON[ImportResponse](t, w)
		if resp.Rows != 2 || resp.Kind != "us_stock" || resp.Filename != "us.csv" {
			t.Errorf("Unexpected response: %+v", resp)
		}
		if got := list(); len(got) != 2 {
			t.Errorf("Expected 2 stored holdings, got %+v", got)
		}
	})

	t.Run("reports the missing column", func(t *testing.T) {
		handler, store, list := setup(t)

		req := testutil.NewUploadRequest(t, "/api/import/us_stock", "us.csv", []byte("ticker,price\nAAPL,10\n"))
		req = testutil.WithSession(testutil.WithURLParams(req, map[string]string{"kind": "us_stock"}), "u", store.ID)
		w := httptest.NewRecorder()
		handler.Import(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		resp := testutil.DecodeJSON[map[string]string](t, w)
		if resp["details"] != "股數/shares" {
			t.Errorf("Expected the shares column to be named, got %+v", resp)
		}
		if got := list(); len(got) != 0 {
			t.Errorf("Expected nothing stored, got %+v", got)
		}
	})

	t.Run("rejects unknown kinds and formats", func(t *testing.T) {
		handler, store, _ := setup(t)

		for _, tc := range []struct{ kind, file string }{{"crypto", "a.csv"}, {"us_stock", "a.pdf"}} {
			req := testutil.NewUploadRequest(t, "/api/import/"+tc.kind, tc.file, []byte("x"))
			req = testutil.WithSession(testutil.WithURLParams(req, map[string]string{"kind": tc.kind}), "u", store.ID)
			w := httptest.NewRecorder()
			handler.Import(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("%s/%s: expected 400, got %d", tc.kind, tc.file, w.Code)
			}
		}
	})

	t.Run("requires a file", func(t *testing.T) {
		handler, store, _ := setup(t)

		req := testutil.WithSession(testutil.NewRequestWithURLParams(http.MethodPost, "/api/import/us_stock",
			map[string]string{"kind": "us_stock"}), "u", store.ID)
		w := httptest.NewRecorder()
		handler.Import(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
