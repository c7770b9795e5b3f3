package cmd

import (
	"sync"

	"burrow/worker/aggregator"
	"burrow/worker/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "burrow ledger worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		db := provideDatabase()
		defer db.Close()

		propertyStore := providePropertyStore(db)
		tokenStore := provideTokenStore(db)
		marketStore := provideMarketStore(db)
		accountStore := provideAccountStore(db)
		positionStore := providePositionStore(db)
		flowStore := provideFlowStore(db)
		protocolStore := provideProtocolStore(db)
		rewardStore := provideRewardStore(db)
		eventStore := provideEventStore(db)

		marketService := provideMarketService(tokenStore, rewardStore)
		oracleService := provideOracleService()
		protocolService := provideProtocolService(protocolStore, marketStore, accountStore)

		ledgerWorker := ledger.New(
			cfg.Ledger.Batch,
			db,
			propertyStore,
			eventStore,
			tokenStore,
			marketStore,
			accountStore,
			positionStore,
			flowStore,
			protocolStore,
			rewardStore,
			marketService,
			oracleService,
			protocolService,
		)

		aggregatorWorker := aggregator.New(
			cfg.App.Location,
			db,
			marketStore,
			marketService,
			protocolService,
		)

		wg := sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			ledgerWorker.Run(ctx)
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			aggregatorWorker.Start()
			<-ctx.Done()
			aggregatorWorker.Stop()
		}()

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
