package oracle

import (
	"context"
	"fmt"
	"time"

	"fractional/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const cacheKey = "latest_rate"

type oracleService struct {
	cfg    core.PriceOracle
	client *resty.Client
	cache  gcache.Cache
}

// New new price oracle service.
//
// With an endpoint configured the rate comes from a chainlink style feed
// returning an integer answer with a decimal scale; otherwise the fixed rate
// from the config is served, which is what tests and local setups use.
func New(cfg core.PriceOracle) core.IPriceOracleService {
	ttl := time.Duration(cfg.CacheSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	return &oracleService{
		cfg: cfg,
		client: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(10 * time.Second),
		cache: gcache.New(1).LRU().Expiration(ttl).Build(),
	}
}

type feedResp struct {
	Answer int64 `json:"answer"`
	Scale  int32 `json:"scale"`
}

func (s *oracleService) LatestRate(ctx context.Context) (decimal.Decimal, error) {
	if s.cfg.EndPoint == "" {
		if s.cfg.FixedRate.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("oracle: no endpoint and no fixed rate configured")
		}

		return s.cfg.FixedRate, nil
	}

	if v, err := s.cache.Get(cacheKey); err == nil {
		return v.(decimal.Decimal), nil
	}

	var resp feedResp
	r, err := s.client.R().SetContext(ctx).SetResult(&resp).Get(s.cfg.EndPoint)
	if err != nil {
		return decimal.Zero, err
	}

	if r.IsError() {
		return decimal.Zero, fmt.Errorf("oracle: feed status %d", r.StatusCode())
	}

	if resp.Answer <= 0 {
		return decimal.Zero, fmt.Errorf("oracle: non positive answer %d", resp.Answer)
	}

	rate := decimal.New(resp.Answer, -resp.Scale)
	if err := s.cache.Set(cacheKey, rate); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("oracle: cache rate")
	}

	return rate, nil
}

// AssetPrice quotes the usd price of one asset symbol from the feed. Quotes
// are not cached, the poll worker is the only caller and runs on its own
// interval.
func (s *oracleService) AssetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if s.cfg.EndPoint == "" {
		return decimal.Zero, core.ErrNoFeed
	}

	var resp feedResp
	r, err := s.client.R().SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&resp).
		Get(s.cfg.EndPoint)
	if err != nil {
		return decimal.Zero, err
	}

	if r.IsError() {
		return decimal.Zero, fmt.Errorf("oracle: feed status %d", r.StatusCode())
	}

	if resp.Answer <= 0 {
		return decimal.Zero, fmt.Errorf("oracle: non positive answer %d", resp.Answer)
	}

	return decimal.New(resp.Answer, -resp.Scale), nil
}
