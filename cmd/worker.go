package cmd

import (
	"lend/worker"
	"lend/worker/accrual"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lend job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		propertyStore := providePropertyStore(database)
		assetStore := provideAssetStore(database)
		poolStore := providePoolStore(database)
		accountStore := provideAccountStore(database)
		treasuryStore := provideTreasuryStore(database)

		oracleService := provideOracleService()
		treasuryService := provideTreasuryService(treasuryStore)
		registryService := provideRegistryService(system, database, assetStore, poolStore, propertyStore)
		poolService := providePoolService(registryService)
		accountService := provideAccountService(assetStore, poolStore, accountStore, oracleService)
		ledgerService := provideLedgerService(database, system, assetStore, poolStore, accountStore, registryService, poolService, accountService, treasuryService)

		jobs := []worker.IJob{
			accrual.New(provideConfig(), poolStore, ledgerService),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatal("start job failed")
			}
		}

		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			for _, job := range jobs {
				job.Stop()
			}
			close(done)
		})

		log.Infoln("worker started")
		<-done
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
