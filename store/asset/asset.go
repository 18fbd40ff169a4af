package asset

import (
	"context"

	"lend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type assetStore struct {
	db *db.DB
}

// New new asset store
func New(db *db.DB) core.IAssetStore {
	return &assetStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.AssetConfig{})
		if err := tx.AutoMigrate(core.AssetConfig{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetStore) Save(ctx context.Context, tx *db.DB, asset *core.AssetConfig) error {
	if err := tx.Update().Create(asset).Error; err != nil {
		return err
	}
	return nil
}

func (s *assetStore) Find(ctx context.Context, symbol string) (*core.AssetConfig, error) {
	var asset core.AssetConfig
	if err := s.db.View().Where("symbol=?", symbol).First(&asset).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.AssetConfig{}, nil
		}
		return nil, err
	}

	return &asset, nil
}

func (s *assetStore) All(ctx context.Context) ([]*core.AssetConfig, error) {
	var assets []*core.AssetConfig
	if err := s.db.View().Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *assetStore) AllAsMap(ctx context.Context) (map[string]*core.AssetConfig, error) {
	assets, e := s.All(ctx)
	if e != nil {
		return nil, e
	}

	maps := make(map[string]*core.AssetConfig)

	for _, a := range assets {
		maps[a.Symbol] = a
	}

	return maps, nil
}

func (s *assetStore) Update(ctx context.Context, tx *db.DB, asset *core.AssetConfig) error {
	version := asset.Version
	asset.Version++
	if err := tx.Update().Model(core.AssetConfig{}).Where("symbol=? and version=?", asset.Symbol, version).Update(asset).Error; err != nil {
		return err
	}

	return nil
}
