package asset

import (
	"context"
	"fractional/core"

	"github.com/fox-one/pkg/store/db"
)

type assetStore struct {
	db *db.DB
}

// New new asset store
func New(db *db.DB) core.IAssetStore {
	return &assetStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Asset{})
		if err := tx.AutoMigrate(core.Asset{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetStore) Create(ctx context.Context, tx *db.DB, asset *core.Asset) error {
	if err := tx.Update().Create(asset).Error; err != nil {
		return err
	}
	return nil
}

func (s *assetStore) Find(ctx context.Context, tokenID string) (*core.Asset, error) {
	var asset core.Asset
	if err := s.db.View().Where("token_id=?", tokenID).First(&asset).Error; err != nil {
		return nil, err
	}

	return &asset, nil
}

func (s *assetStore) All(ctx context.Context) ([]*core.Asset, error) {
	var assets []*core.Asset
	if err := s.db.View().Order("id").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *assetStore) Update(ctx context.Context, tx *db.DB, asset *core.Asset) error {
	version := asset.Version
	asset.Version++
	if err := tx.Update().Model(core.Asset{}).Where("token_id=? and version=?", asset.TokenID, version).Update(asset).Error; err != nil {
		return err
	}

	return nil
}
