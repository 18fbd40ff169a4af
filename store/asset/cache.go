package asset

import (
	"context"
	"fmt"
	"time"

	"lend/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache read-through cache over an asset store. Configs are hot on every
// ledger operation and mutated only by admin calls.
func Cache(store core.IAssetStore, exp time.Duration) core.IAssetStore {
	return &cacheAssetStore{
		IAssetStore: store,
		cache:       gcache.New(256).LRU().Build(),
		sf:          &singleflight.Group{},
		exp:         exp,
	}
}

type cacheAssetStore struct {
	core.IAssetStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
}

func (s *cacheAssetStore) Save(ctx context.Context, tx *db.DB, asset *core.AssetConfig) error {
	if err := s.IAssetStore.Save(ctx, tx, asset); err != nil {
		return err
	}
	s.cacheAsset(asset)
	return nil
}

func (s *cacheAssetStore) Update(ctx context.Context, tx *db.DB, asset *core.AssetConfig) error {
	if err := s.IAssetStore.Update(ctx, tx, asset); err != nil {
		return err
	}
	s.cache.Remove(s.assetKey(asset.Symbol))
	return nil
}

func (s *cacheAssetStore) Find(ctx context.Context, symbol string) (*core.AssetConfig, error) {
	if v, err := s.cache.Get(s.assetKey(symbol)); err == nil {
		if asset, ok := v.(*core.AssetConfig); ok {
			return asset, nil
		}
	}

	v, err, _ := s.sf.Do(s.assetKey(symbol), func() (interface{}, error) {
		asset, err := s.IAssetStore.Find(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if asset.ID > 0 {
			s.cacheAsset(asset)
		}
		return asset, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.AssetConfig), nil
}

func (s *cacheAssetStore) cacheAsset(asset *core.AssetConfig) {
	_ = s.cache.SetWithExpire(s.assetKey(asset.Symbol), asset, s.exp)
}

func (s *cacheAssetStore) assetKey(symbol string) string {
	return fmt.Sprintf("asset:%s", symbol)
}
