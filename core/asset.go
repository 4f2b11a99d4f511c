package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Asset tokenized asset record
type Asset struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenID string `sql:"size:36;unique_index:token_idx" json:"token_id"`
	Name    string `sql:"size:64" json:"name"`
	Symbol  string `sql:"size:20;index:symbol_idx" json:"symbol"`
	// 资产美元价格, whole usd units
	PriceUSD decimal.Decimal `sql:"type:decimal(20,8)" json:"price_usd"`
	// 最近一次改价时间
	PriceUpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"price_updated_at"`
	Version        int64     `sql:"default:0" json:"version"`
	CreatedAt      time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IAssetStore asset store interface
type IAssetStore interface {
	Create(ctx context.Context, tx *db.DB, asset *Asset) error
	Find(ctx context.Context, tokenID string) (*Asset, error)
	// All returns assets ordered by insertion id
	All(ctx context.Context) ([]*Asset, error)
	Update(ctx context.Context, tx *db.DB, asset *Asset) error
}

// IAssetService asset registry interface
type IAssetService interface {
	// CreateAsset mints the full supply of a new asset token to owner and
	// appends the asset record
	CreateAsset(ctx context.Context, tx *db.DB, supply decimal.Decimal, name, symbol string, priceUSD decimal.Decimal, owner string) (*Asset, error)
	UpdatePrice(ctx context.Context, tx *db.DB, tokenID string, priceUSD decimal.Decimal) error
	GetAsset(ctx context.Context, tokenID string) (*Asset, error)
	ListAssets(ctx context.Context) ([]*Asset, error)
}
