package service

import (
	"context"
	"strings"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/repository"
)

// AssetService handles the editable tables of a store: the two holdings
// tables, fixed assets, liabilities and settings. Every save replaces the
// whole table; the last writer wins.
type AssetService struct {
	storeRepo      *repository.StoreRepository
	holdingRepo    *repository.HoldingRepository
	fixedAssetRepo *repository.FixedAssetRepository
	liabilityRepo  *repository.LiabilityRepository
	settingRepo    *repository.SettingRepository
}

// NewAssetService creates a new AssetService with the provided repository dependencies.
func NewAssetService(
	storeRepo *repository.StoreRepository,
	holdingRepo *repository.HoldingRepository,
	fixedAssetRepo *repository.FixedAssetRepository,
	liabilityRepo *repository.LiabilityRepository,
	settingRepo *repository.SettingRepository,
) *AssetService {
	return &AssetService{
		storeRepo:      storeRepo,
		holdingRepo:    holdingRepo,
		fixedAssetRepo: fixedAssetRepo,
		liabilityRepo:  liabilityRepo,
		settingRepo:    settingRepo,
	}
}

// GetHoldings returns one holdings table.
func (s *AssetService) GetHoldings(ctx context.Context, storeID string, market model.Market) ([]model.Holding, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.holdingRepo.GetHoldings(ctx, storeID, market)
}

// SaveHoldings replaces one holdings table and returns what was stored.
func (s *AssetService) SaveHoldings(ctx context.Context, storeID string, market model.Market, holdings []model.Holding) ([]model.Holding, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	clean := SanitizeHoldings(holdings, market)
	if err := s.holdingRepo.ReplaceHoldings(ctx, storeID, market, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

// DeleteHolding removes one holding by symbol.
func (s *AssetService) DeleteHolding(ctx context.Context, storeID string, market model.Market, symbol string) error {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return err
	}
	return s.holdingRepo.DeleteHolding(ctx, storeID, market, strings.ToUpper(strings.TrimSpace(symbol)))
}

// GetFixedAssets returns the fixed asset table.
func (s *AssetService) GetFixedAssets(ctx context.Context, storeID string) ([]model.FixedAsset, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.fixedAssetRepo.GetFixedAssets(ctx, storeID)
}

// SaveFixedAssets replaces the fixed asset table and returns what was stored.
func (s *AssetService) SaveFixedAssets(ctx context.Context, storeID string, assets []model.FixedAsset) ([]model.FixedAsset, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	clean := SanitizeFixedAssets(assets)
	if err := s.fixedAssetRepo.ReplaceFixedAssets(ctx, storeID, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

// GetLiabilities returns the liability table.
func (s *AssetService) GetLiabilities(ctx context.Context, storeID string) ([]model.Liability, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.liabilityRepo.GetLiabilities(ctx, storeID)
}

// SaveLiabilities replaces the liability table and returns what was stored.
func (s *AssetService) SaveLiabilities(ctx context.Context, storeID string, liabilities []model.Liability) ([]model.Liability, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	clean := SanitizeLiabilities(liabilities)
	if err := s.liabilityRepo.ReplaceLiabilities(ctx, storeID, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

// GetSettings returns the store's settings, defaults filled in.
func (s *AssetService) GetSettings(ctx context.Context, storeID string) (model.Settings, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return model.Settings{}, err
	}
	return s.settingRepo.GetSettings(ctx, storeID)
}

// SaveSettings overwrites the store's settings.
func (s *AssetService) SaveSettings(ctx context.Context, storeID string, settings model.Settings) (model.Settings, error) {
	if _, err := s.storeRepo.GetStore(ctx, storeID); err != nil {
		return model.Settings{}, err
	}
	if err := s.settingRepo.SaveSettings(ctx, storeID, settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// blankKey reports whether a row key counts as empty when saving: blank,
// "nan", "none" or "0".
func blankKey(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "0":
		return true
	}
	return false
}

// SanitizeHoldings trims and upper-cases symbols, drops rows with a blank
// symbol and fills missing categories with the market default.
func SanitizeHoldings(holdings []model.Holding, market model.Market) []model.Holding {
	out := make([]model.Holding, 0, len(holdings))
	for _, h := range holdings {
		if blankKey(h.Symbol) {
			continue
		}
		h.Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))
		h.DisplayName = strings.TrimSpace(h.DisplayName)
		h.Category = model.ParseCategory(string(h.Category), market.DefaultCategory())
		out = append(out, h)
	}
	return out
}

// SanitizeFixedAssets drops rows with a blank name and fills missing categories.
func SanitizeFixedAssets(assets []model.FixedAsset) []model.FixedAsset {
	out := make([]model.FixedAsset, 0, len(assets))
	for _, a := range assets {
		if blankKey(a.Name) {
			continue
		}
		a.Name = strings.TrimSpace(a.Name)
		a.Category = model.ParseCategory(string(a.Category), model.CategoryFixedAsset)
		out = append(out, a)
	}
	return out
}

// SanitizeLiabilities drops rows with a blank name.
func SanitizeLiabilities(liabilities []model.Liability) []model.Liability {
	out := make([]model.Liability, 0, len(liabilities))
	for _, l := range liabilities {
		if blankKey(l.Name) {
			continue
		}
		l.Name = strings.TrimSpace(l.Name)
		out = append(out, l)
	}
	return out
}
