package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position per account collateral & debt ledger entry.
//
// Collateral is in asset token units, debt in native currency units. Both are
// never negative. A position is created lazily on the first deposit and only
// ever zeroed, never deleted.
type Position struct {
	ID         uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	ProtocolID uint64          `sql:"unique_index:protocol_user_idx" json:"protocol_id"`
	UserID     string          `sql:"size:36;unique_index:protocol_user_idx" json:"user_id"`
	Collateral decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral"`
	Debt       decimal.Decimal `sql:"type:decimal(20,8)" json:"debt"`
	// 最近一次计息时间
	LastInterestAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"last_interest_at"`
	Version        int64     `sql:"default:0" json:"version"`
	CreatedAt      time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPositionStore position store interface
type IPositionStore interface {
	Save(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, protocolID uint64, userID string) (*Position, error)
	FindByProtocol(ctx context.Context, protocolID uint64) ([]*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	// All returns every position ordered by insertion id
	All(ctx context.Context) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error
}
