package core

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoFeed returned by oracle quotes that need a configured feed endpoint
var ErrNoFeed = errors.New("oracle: no feed configured")

// IPriceOracleService native currency / usd exchange rate source.
//
// LatestRate returns how many usd one native currency unit is worth. The feed
// is assumed monotone fresh; no staleness check is performed here.
type IPriceOracleService interface {
	LatestRate(ctx context.Context) (decimal.Decimal, error)
	// AssetPrice returns the usd price quoted by the feed for one asset
	// symbol. ErrNoFeed when no endpoint is configured.
	AssetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
