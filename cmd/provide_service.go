package cmd

import (
	"lend/core"
	accountservice "lend/service/account"
	ledgerservice "lend/service/ledger"
	oracleservice "lend/service/oracle"
	poolservice "lend/service/pool"
	registryservice "lend/service/registry"
	treasuryservice "lend/service/treasury"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
)

func provideOracleService() core.IPriceOracleService {
	return oracleservice.New(&cfg.Oracle)
}

func provideTreasuryService(treasuryStore core.ITreasuryStore) core.ITreasuryService {
	return treasuryservice.New(&cfg.Treasury, treasuryStore)
}

func provideRegistryService(
	system *core.System,
	db *db.DB,
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	propertyStore property.Store,
) core.IRegistryService {
	return registryservice.New(system, db, assetStore, poolStore, propertyStore)
}

func providePoolService(registry core.IRegistryService) core.IPoolService {
	return poolservice.New(registry)
}

func provideAccountService(
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	accountStore core.IAccountStore,
	priceService core.IPriceOracleService,
) core.IAccountService {
	return accountservice.New(assetStore, poolStore, accountStore, priceService)
}

func provideLedgerService(
	db *db.DB,
	system *core.System,
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	accountStore core.IAccountStore,
	registry core.IRegistryService,
	poolz core.IPoolService,
	accountz core.IAccountService,
	treasuryz core.ITreasuryService,
) core.ILedgerService {
	return ledgerservice.New(db, system, assetStore, poolStore, accountStore, registry, poolz, accountz, treasuryz)
}
