package cmd

import (
	"time"

	"lend/core"
	"lend/store/account"
	"lend/store/asset"
	"lend/store/pool"
	"lend/store/treasury"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideSystem() *core.System {
	return &core.System{
		Admins:   cfg.Admins,
		Location: cfg.App.Location,
		Version:  rootCmd.Version,
	}
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideAssetStore(db *db.DB) core.IAssetStore {
	return asset.Cache(asset.New(db), 10*time.Second)
}

func providePoolStore(db *db.DB) core.IPoolStore {
	return pool.New(db)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return account.New(db)
}

func provideTreasuryStore(db *db.DB) core.ITreasuryStore {
	return treasury.New(db)
}
