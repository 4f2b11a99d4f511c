package protocol

import (
	"context"
	"fractional/core"

	"github.com/fox-one/pkg/store/db"
)

type protocolStore struct {
	db *db.DB
}

// New new protocol store
func New(db *db.DB) core.IProtocolStore {
	return &protocolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Protocol{})
		if err := tx.AutoMigrate(core.Protocol{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *protocolStore) Create(ctx context.Context, tx *db.DB, protocol *core.Protocol) error {
	if err := tx.Update().Create(protocol).Error; err != nil {
		return err
	}
	return nil
}

func (s *protocolStore) Find(ctx context.Context, id uint64) (*core.Protocol, error) {
	var protocol core.Protocol
	if err := s.db.View().Where("id=?", id).First(&protocol).Error; err != nil {
		return nil, err
	}

	return &protocol, nil
}

func (s *protocolStore) FindByToken(ctx context.Context, tokenID string) (*core.Protocol, error) {
	var protocol core.Protocol
	if err := s.db.View().Where("token_id=?", tokenID).First(&protocol).Error; err != nil {
		return nil, err
	}

	return &protocol, nil
}

func (s *protocolStore) All(ctx context.Context) ([]*core.Protocol, error) {
	var protocols []*core.Protocol
	if err := s.db.View().Order("id").Find(&protocols).Error; err != nil {
		return nil, err
	}
	return protocols, nil
}
