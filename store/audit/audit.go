package audit

import (
	"context"
	"fractional/core"

	"github.com/fox-one/pkg/store/db"
)

type auditStore struct {
	db *db.DB
}

// New new audit store
func New(db *db.DB) core.IAuditStore {
	return &auditStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Audit{})
		if err := tx.AutoMigrate(core.Audit{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *auditStore) Append(ctx context.Context, tx *db.DB, audit *core.Audit) error {
	if err := tx.Update().Create(audit).Error; err != nil {
		return err
	}
	return nil
}

func (s *auditStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Audit, error) {
	if limit <= 0 {
		limit = 100
	}

	var audits []*core.Audit
	if err := s.db.View().Where("id > ?", fromID).Order("id").Limit(limit).Find(&audits).Error; err != nil {
		return nil, err
	}
	return audits, nil
}
