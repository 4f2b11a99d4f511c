package cmd

import (
	"time"

	"fractional/worker"
	"fractional/worker/interest"
	"fractional/worker/priceoracle"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run background workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		assetStore := provideAssetStore(database)
		protocolStore := provideProtocolStore(database)
		positionStore := providePositionStore(database)
		tokenStore := provideTokenStore(database)
		walletStore := provideWalletStore(database)

		oracleService := provideOracleService()
		assetService := provideAssetService(assetStore, tokenStore)
		lendingService := provideLendingService(protocolStore, positionStore, assetStore, tokenStore, walletStore, oracleService)

		pollInterval := time.Duration(cfg.PriceOracle.PollInterval) * time.Second

		workers := []worker.Worker{
			priceoracle.New(database, pollInterval, assetStore, assetService, oracleService),
			interest.New(database, time.Minute, positionStore, lendingService),
		}

		g, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Errorln("workers done")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
