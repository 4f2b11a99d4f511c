package sale

import (
	"context"
	"fractional/core"

	"github.com/fox-one/pkg/store/db"
)

type saleStore struct {
	db *db.DB
}

// New new sale store
func New(db *db.DB) core.ISaleStore {
	return &saleStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Sale{})
		if err := tx.AutoMigrate(core.Sale{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *saleStore) Create(ctx context.Context, tx *db.DB, sale *core.Sale) error {
	if err := tx.Update().Create(sale).Error; err != nil {
		return err
	}
	return nil
}

func (s *saleStore) Find(ctx context.Context, tokenID string) (*core.Sale, error) {
	var sale core.Sale
	if err := s.db.View().Where("token_id=?", tokenID).First(&sale).Error; err != nil {
		return nil, err
	}

	return &sale, nil
}

func (s *saleStore) FindByCreator(ctx context.Context, creator string) ([]*core.Sale, error) {
	var sales []*core.Sale
	if err := s.db.View().Where("creator=?", creator).Order("id").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *saleStore) Update(ctx context.Context, tx *db.DB, sale *core.Sale) error {
	version := sale.Version
	sale.Version++
	if err := tx.Update().Model(core.Sale{}).Where("token_id=? and version=?", sale.TokenID, version).Update(sale).Error; err != nil {
		return err
	}

	return nil
}
