package interest

import (
	"context"
	"time"

	"fractional/core"
	"fractional/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Worker periodically folds accrued interest into every open debt so reads
// and liquidation checks see close to current numbers
type Worker struct {
	worker.TickWorker
	db             *db.DB
	positionStore  core.IPositionStore
	lendingService core.ILendingService
}

// New new interest worker
func New(
	database *db.DB,
	interval time.Duration,
	positionStore core.IPositionStore,
	lendingService core.ILendingService,
) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: interval,
		},
		db:             database,
		positionStore:  positionStore,
		lendingService: lendingService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	positions, err := w.positionStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch positions")
		return err
	}

	for _, position := range positions {
		if position.Debt.LessThanOrEqual(decimal.Zero) {
			continue
		}

		position := position
		err := w.db.Tx(func(tx *db.DB) error {
			return w.lendingService.AccrueInterest(ctx, tx, position)
		})
		if err != nil {
			// version conflicts with live traffic just wait for the next tick
			log.WithError(err).Errorln("accrue", position.ID)
		}
	}

	return nil
}
