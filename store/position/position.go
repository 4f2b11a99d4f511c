package position

import (
	"context"
	"fractional/core"

	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if err := tx.Update().Create(position).Error; err != nil {
		return err
	}
	return nil
}

func (s *positionStore) Find(ctx context.Context, protocolID uint64, userID string) (*core.Position, error) {
	var position core.Position
	if err := s.db.View().Where("protocol_id=? and user_id=?", protocolID, userID).First(&position).Error; err != nil {
		return nil, err
	}

	return &position, nil
}

func (s *positionStore) FindByProtocol(ctx context.Context, protocolID uint64) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("protocol_id=?", protocolID).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("user_id=?", userID).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) All(ctx context.Context) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	version := position.Version
	position.Version++
	if err := tx.Update().Model(core.Position{}).Where("id=? and version=?", position.ID, version).Update(position).Error; err != nil {
		return err
	}

	return nil
}
