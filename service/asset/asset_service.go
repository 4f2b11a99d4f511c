package asset

import (
	"context"
	"time"

	"fractional/core"
	"fractional/pkg/id"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type assetService struct {
	assetStore core.IAssetStore
	tokenStore core.ITokenStore
}

// New new asset registry service
func New(assetStore core.IAssetStore, tokenStore core.ITokenStore) core.IAssetService {
	return &assetService{
		assetStore: assetStore,
		tokenStore: tokenStore,
	}
}

func (s *assetService) CreateAsset(ctx context.Context, tx *db.DB, supply decimal.Decimal, name, symbol string, priceUSD decimal.Decimal, owner string) (*core.Asset, error) {
	if supply.LessThanOrEqual(decimal.Zero) || name == "" {
		return nil, core.ErrInvalidArgument
	}

	if symbol == "" || !govalidator.IsAlphanumeric(symbol) {
		return nil, core.ErrInvalidArgument
	}

	if priceUSD.LessThanOrEqual(decimal.Zero) {
		return nil, core.ErrInvalidArgument
	}

	asset := &core.Asset{
		TokenID:        id.GenTraceID(),
		Name:           name,
		Symbol:         symbol,
		PriceUSD:       priceUSD,
		PriceUpdatedAt: time.Now(),
	}

	if err := s.assetStore.Create(ctx, tx, asset); err != nil {
		return nil, err
	}

	if err := s.tokenStore.MintTo(ctx, tx, asset.TokenID, owner, supply); err != nil {
		return nil, err
	}

	return asset, nil
}

func (s *assetService) UpdatePrice(ctx context.Context, tx *db.DB, tokenID string, priceUSD decimal.Decimal) error {
	if priceUSD.LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidArgument
	}

	asset, err := s.GetAsset(ctx, tokenID)
	if err != nil {
		return err
	}

	asset.PriceUSD = priceUSD
	asset.PriceUpdatedAt = time.Now()
	return s.assetStore.Update(ctx, tx, asset)
}

func (s *assetService) GetAsset(ctx context.Context, tokenID string) (*core.Asset, error) {
	asset, err := s.assetStore.Find(ctx, tokenID)
	if gorm.IsRecordNotFoundError(err) {
		return nil, core.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}

	return asset, nil
}

func (s *assetService) ListAssets(ctx context.Context) ([]*core.Asset, error) {
	return s.assetStore.All(ctx)
}
