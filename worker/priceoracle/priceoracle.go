package priceoracle

import (
	"context"
	"errors"
	"time"

	"fractional/core"
	"fractional/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Worker polls the price feed and refreshes the usd price of every asset
type Worker struct {
	worker.TickWorker
	db           *db.DB
	assetStore   core.IAssetStore
	assetService core.IAssetService
	priceService core.IPriceOracleService
}

// New new price oracle worker
func New(
	database *db.DB,
	interval time.Duration,
	assetStore core.IAssetStore,
	assetService core.IAssetService,
	priceService core.IPriceOracleService,
) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: interval,
		},
		db:           database,
		assetStore:   assetStore,
		assetService: assetService,
		priceService: priceService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	assets, err := w.assetStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch assets")
		return err
	}

	for _, asset := range assets {
		price, err := w.priceService.AssetPrice(ctx, asset.Symbol)
		if errors.Is(err, core.ErrNoFeed) {
			return nil
		}
		if err != nil {
			log.WithError(err).Errorln("quote", asset.Symbol)
			continue
		}

		if price.Equal(asset.PriceUSD) {
			continue
		}

		tokenID := asset.TokenID
		err = w.db.Tx(func(tx *db.DB) error {
			return w.assetService.UpdatePrice(ctx, tx, tokenID, price)
		})
		if err != nil {
			log.WithError(err).Errorln("update price", asset.Symbol)
			continue
		}

		log.Infoln("price updated", asset.Symbol, asset.PriceUSD, "->", price)
	}

	return nil
}
