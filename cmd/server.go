package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lend/handler/hc"
	"lend/handler/rest"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run lend api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

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

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version))
		}

		{
			//restful api
			mux.Mount("/api", rest.Handle(
				system,
				assetStore,
				poolStore,
				accountStore,
				treasuryStore,
				poolService,
				accountService,
				registryService,
				ledgerService,
			))
		}

		port, _ := cmd.Flags().GetInt("port")
		if port <= 0 {
			port = cfg.App.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, overrides config")
}
