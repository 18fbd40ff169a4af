package cmd

import (
	"strings"

	"lend/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func adminAuth(cmd *cobra.Command) *core.AuthContext {
	caller, _ := cmd.Flags().GetString("caller")
	if caller == "" && len(cfg.Admins) > 0 {
		caller = cfg.Admins[0]
	}

	return core.NewAuth(caller)
}

func mustAmountFlag(cmd *cobra.Command, name string) decimal.Decimal {
	raw, e := cmd.Flags().GetString(name)
	if e != nil {
		panic(e)
	}

	amount, e := decimal.NewFromString(raw)
	if e != nil {
		panic("invalid " + name)
	}

	return amount
}

var addAssetCmd = &cobra.Command{
	Use:     "add-asset",
	Aliases: []string{"aa"},
	Short:   "register an asset and initialize its pool",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		propertyStore := providePropertyStore(database)
		assetStore := provideAssetStore(database)
		poolStore := providePoolStore(database)
		registryService := provideRegistryService(system, database, assetStore, poolStore, propertyStore)

		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}

		asset := core.AssetConfig{Symbol: strings.ToUpper(symbol)}
		asset.IsCollateral, _ = cmd.Flags().GetBool("collateral")
		asset.IsBorrowable, _ = cmd.Flags().GetBool("borrowable")
		asset.ReserveFactorBps, _ = cmd.Flags().GetInt64("reserve-factor")
		asset.LoanToValueBps, _ = cmd.Flags().GetInt64("ltv")
		asset.LiquidationThresholdBps, _ = cmd.Flags().GetInt64("threshold")
		asset.LiquidationPenaltyBps, _ = cmd.Flags().GetInt64("penalty")
		asset.BaseRateBps, _ = cmd.Flags().GetInt64("base-rate")
		asset.SlopeBelowKinkBps, _ = cmd.Flags().GetInt64("slope-below")
		asset.KinkUtilizationBps, _ = cmd.Flags().GetInt64("kink")
		asset.SlopeAboveKinkBps, _ = cmd.Flags().GetInt64("slope-above")

		if err := registryService.AddAsset(ctx, adminAuth(cmd), &asset); err != nil {
			panic(err)
		}

		cmd.Println("asset registered:", asset.Symbol)
	},
}

var setCapsCmd = &cobra.Command{
	Use:   "set-caps",
	Short: "update asset supply and borrow caps",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		propertyStore := providePropertyStore(database)
		assetStore := provideAssetStore(database)
		poolStore := providePoolStore(database)
		registryService := provideRegistryService(system, database, assetStore, poolStore, propertyStore)

		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}

		caps := core.AssetCaps{
			TotalSupplyCap: mustAmountFlag(cmd, "total-supply"),
			TotalBorrowCap: mustAmountFlag(cmd, "total-borrow"),
			PerTxSupplyCap: mustAmountFlag(cmd, "per-tx-supply"),
			PerTxBorrowCap: mustAmountFlag(cmd, "per-tx-borrow"),
		}

		if err := registryService.SetCaps(ctx, adminAuth(cmd), strings.ToUpper(symbol), caps); err != nil {
			panic(err)
		}

		cmd.Println("caps updated")
	},
}

var setRiskCmd = &cobra.Command{
	Use:   "set-risk",
	Short: "update asset risk parameters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		propertyStore := providePropertyStore(database)
		assetStore := provideAssetStore(database)
		poolStore := providePoolStore(database)
		registryService := provideRegistryService(system, database, assetStore, poolStore, propertyStore)

		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}

		ltv, _ := cmd.Flags().GetInt64("ltv")
		threshold, _ := cmd.Flags().GetInt64("threshold")
		penalty, _ := cmd.Flags().GetInt64("penalty")

		if err := registryService.SetRiskParams(ctx, adminAuth(cmd), strings.ToUpper(symbol), ltv, threshold, penalty); err != nil {
			panic(err)
		}

		cmd.Println("risk params updated")
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "pause or resume ledger mutations",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		propertyStore := providePropertyStore(database)
		assetStore := provideAssetStore(database)
		poolStore := providePoolStore(database)
		registryService := provideRegistryService(system, database, assetStore, poolStore, propertyStore)

		resume, _ := cmd.Flags().GetBool("resume")
		if err := registryService.SetPaused(ctx, adminAuth(cmd), !resume); err != nil {
			panic(err)
		}

		cmd.Println("paused:", !resume)
	},
}

var skimCmd = &cobra.Command{
	Use:   "skim",
	Short: "move accumulated reserves to the treasury",
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

		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}

		amount := mustAmountFlag(cmd, "amount")
		if err := ledgerService.SkimReserves(ctx, adminAuth(cmd), strings.ToUpper(symbol), amount); err != nil {
			panic(err)
		}

		cmd.Println("reserves skimmed:", amount)
	},
}

func init() {
	for _, c := range []*cobra.Command{addAssetCmd, setCapsCmd, setRiskCmd, pauseCmd, skimCmd} {
		c.Flags().String("caller", "", "admin user id, defaults to the first configured admin")
	}

	addAssetCmd.Flags().StringP("symbol", "s", "", "asset symbol")
	addAssetCmd.Flags().Bool("collateral", false, "usable as collateral")
	addAssetCmd.Flags().Bool("borrowable", false, "open for borrowing")
	addAssetCmd.Flags().Int64("reserve-factor", 0, "reserve factor in bps, 0 falls back to the global value")
	addAssetCmd.Flags().Int64("ltv", 0, "loan to value in bps")
	addAssetCmd.Flags().Int64("threshold", 0, "liquidation threshold in bps")
	addAssetCmd.Flags().Int64("penalty", 0, "liquidation penalty in bps")
	addAssetCmd.Flags().Int64("base-rate", 0, "annual base rate in bps")
	addAssetCmd.Flags().Int64("slope-below", 0, "annual slope below the kink in bps")
	addAssetCmd.Flags().Int64("kink", 8000, "kink utilization in bps")
	addAssetCmd.Flags().Int64("slope-above", 0, "annual slope above the kink in bps")

	setCapsCmd.Flags().StringP("symbol", "s", "", "asset symbol")
	setCapsCmd.Flags().String("total-supply", "0", "total supply cap, 0 means unlimited")
	setCapsCmd.Flags().String("total-borrow", "0", "total borrow cap, 0 means unlimited")
	setCapsCmd.Flags().String("per-tx-supply", "0", "per transaction supply cap, 0 means unlimited")
	setCapsCmd.Flags().String("per-tx-borrow", "0", "per transaction borrow cap, 0 means unlimited")

	setRiskCmd.Flags().StringP("symbol", "s", "", "asset symbol")
	setRiskCmd.Flags().Int64("ltv", 0, "loan to value in bps")
	setRiskCmd.Flags().Int64("threshold", 0, "liquidation threshold in bps")
	setRiskCmd.Flags().Int64("penalty", 0, "liquidation penalty in bps")

	pauseCmd.Flags().Bool("resume", false, "resume instead of pause")

	skimCmd.Flags().StringP("symbol", "s", "", "asset symbol")
	skimCmd.Flags().StringP("amount", "a", "0", "amount of reserves to skim")

	rootCmd.AddCommand(addAssetCmd, setCapsCmd, setRiskCmd, pauseCmd, skimCmd)
}
