package service

import (
	"context"
	"io"

	"github.com/phuslu/log"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/importer"
)

// ImportService loads CSV and spreadsheet files into a store's tables.
type ImportService struct {
	assets *AssetService
}

// NewImportService creates a new ImportService.
func NewImportService(assets *AssetService) *ImportService {
	return &ImportService{assets: assets}
}

// Import parses a file and replaces the table kind points at with its rows.
// A file missing a mandatory column is rejected with a
// *apperrors.MissingColumnError and leaves the table untouched.
func (s *ImportService) Import(ctx context.Context, storeID string, kind importer.Kind, filename string, r io.Reader) (importer.Canonical, error) {
	table, err := importer.ReadFile(filename, r)
	if err != nil {
		return importer.Canonical{}, err
	}

	canonical, err := importer.Normalize(table, kind)
	if err != nil {
		return importer.Canonical{}, err
	}

	switch kind {
	case importer.KindUSStock, importer.KindTWStock:
		market, _ := kind.Market()
		canonical.Holdings, err = s.assets.SaveHoldings(ctx, storeID, market, canonical.Holdings)
	case importer.KindFixedAsset:
		canonical.FixedAssets, err = s.assets.SaveFixedAssets(ctx, storeID, canonical.FixedAssets)
	case importer.KindLiability:
		canonical.Liabilities, err = s.assets.SaveLiabilities(ctx, storeID, canonical.Liabilities)
	}
	if err != nil {
		return importer.Canonical{}, err
	}

	log.Info().
		Str("store_id", storeID).
		Str("kind", string(kind)).
		Str("file", filename).
		Int("rows", canonical.Len()).
		Msg("file imported")

	return canonical, nil
}
