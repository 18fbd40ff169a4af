package registry

import (
	"context"
	"testing"
	"time"

	"lend/core"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeAssetStore map[string]*core.AssetConfig

func (s fakeAssetStore) Save(ctx context.Context, tx *db.DB, asset *core.AssetConfig) error {
	asset.ID = uint64(len(s) + 1)
	s[asset.Symbol] = asset
	return nil
}

func (s fakeAssetStore) Find(ctx context.Context, symbol string) (*core.AssetConfig, error) {
	if a, ok := s[symbol]; ok {
		cp := *a
		return &cp, nil
	}
	return &core.AssetConfig{Symbol: symbol}, nil
}

func (s fakeAssetStore) All(ctx context.Context) ([]*core.AssetConfig, error) {
	assets := make([]*core.AssetConfig, 0, len(s))
	for _, a := range s {
		assets = append(assets, a)
	}
	return assets, nil
}

func (s fakeAssetStore) AllAsMap(ctx context.Context) (map[string]*core.AssetConfig, error) {
	return s, nil
}

func (s fakeAssetStore) Update(ctx context.Context, tx *db.DB, asset *core.AssetConfig) error {
	cp := *asset
	s[asset.Symbol] = &cp
	return nil
}

type fakePoolStore map[string]*core.Pool

func (s fakePoolStore) Save(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	pool.ID = uint64(len(s) + 1)
	s[pool.Symbol] = pool
	return nil
}

func (s fakePoolStore) Find(ctx context.Context, symbol string) (*core.Pool, error) {
	if p, ok := s[symbol]; ok {
		cp := *p
		return &cp, nil
	}
	return &core.Pool{Symbol: symbol}, nil
}

func (s fakePoolStore) All(ctx context.Context) ([]*core.Pool, error) {
	pools := make([]*core.Pool, 0, len(s))
	for _, p := range s {
		pools = append(pools, p)
	}
	return pools, nil
}

func (s fakePoolStore) AllAsMap(ctx context.Context) (map[string]*core.Pool, error) {
	return s, nil
}

func (s fakePoolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	cp := *pool
	s[pool.Symbol] = &cp
	return nil
}

type fakePropertyStore map[string]property.Value

func (s fakePropertyStore) Get(ctx context.Context, key string) (property.Value, error) {
	return s[key], nil
}

func (s fakePropertyStore) Save(ctx context.Context, key string, value interface{}) error {
	s[key] = property.Parse(value)
	return nil
}

func (s fakePropertyStore) Expire(ctx context.Context, key string) error {
	delete(s, key)
	return nil
}

func (s fakePropertyStore) List(ctx context.Context) (map[string]property.Value, error) {
	return s, nil
}

const testNowMs = 1700000000000

func newTestService() (core.IRegistryService, fakeAssetStore, fakePoolStore) {
	assets := fakeAssetStore{}
	pools := fakePoolStore{}
	system := &core.System{Admins: []string{"admin"}}
	clock := func() time.Time { return time.UnixMilli(testNowMs) }
	return NewWithClock(system, nil, assets, pools, fakePropertyStore{}, clock), assets, pools
}

func TestAddAsset(t *testing.T) {
	registryz, assets, pools := newTestService()
	ctx := context.Background()

	asset := &core.AssetConfig{
		Symbol:                  "BTC",
		IsCollateral:            true,
		LoanToValueBps:          7000,
		LiquidationThresholdBps: 8000,
		LiquidationPenaltyBps:   1000,
	}

	require.ErrorIs(t, registryz.AddAsset(ctx, core.NewAuth("mallory"), asset), core.ErrNotAdmin)
	require.ErrorIs(t, registryz.AddAsset(ctx, nil, asset), core.ErrNotAdmin)

	require.NoError(t, registryz.AddAsset(ctx, core.NewAuth("admin"), asset))
	require.NotZero(t, assets["BTC"].ID)

	pool := pools["BTC"]
	require.NotNil(t, pool)
	require.True(t, pool.SupplyIndex.Equal(decimal.NewFromInt(1)))
	require.True(t, pool.BorrowIndex.Equal(decimal.NewFromInt(1)))
	require.True(t, pool.Cash.IsZero())
	require.Equal(t, int64(testNowMs), pool.LastAccrualTsMs)

	require.ErrorIs(t, registryz.AddAsset(ctx, core.NewAuth("admin"), asset), core.ErrDuplicateAsset)
}

func TestAddAssetInvalidRiskParams(t *testing.T) {
	registryz, _, _ := newTestService()
	ctx := context.Background()

	// threshold below ltv
	err := registryz.AddAsset(ctx, core.NewAuth("admin"), &core.AssetConfig{
		Symbol:                  "BTC",
		LoanToValueBps:          8000,
		LiquidationThresholdBps: 7000,
	})
	require.ErrorIs(t, err, core.ErrInvalidRiskParams)

	// ltv above 100%
	err = registryz.AddAsset(ctx, core.NewAuth("admin"), &core.AssetConfig{
		Symbol:                  "BTC",
		LoanToValueBps:          10001,
		LiquidationThresholdBps: 10001,
	})
	require.ErrorIs(t, err, core.ErrInvalidRiskParams)
}

func TestSetRiskParams(t *testing.T) {
	registryz, assets, _ := newTestService()
	ctx := context.Background()

	err := registryz.SetRiskParams(ctx, core.NewAuth("admin"), "BTC", 7000, 8000, 1000)
	require.ErrorIs(t, err, core.ErrAssetNotFound)

	require.NoError(t, registryz.AddAsset(ctx, core.NewAuth("admin"), &core.AssetConfig{
		Symbol:                  "BTC",
		LoanToValueBps:          7000,
		LiquidationThresholdBps: 8000,
	}))

	require.ErrorIs(t, registryz.SetRiskParams(ctx, core.NewAuth("admin"), "BTC", 9000, 8500, 0), core.ErrInvalidRiskParams)

	require.NoError(t, registryz.SetRiskParams(ctx, core.NewAuth("admin"), "BTC", 6000, 7500, 500))
	require.Equal(t, int64(6000), assets["BTC"].LoanToValueBps)
	require.Equal(t, int64(7500), assets["BTC"].LiquidationThresholdBps)
	require.Equal(t, int64(500), assets["BTC"].LiquidationPenaltyBps)
}

func TestSetCaps(t *testing.T) {
	registryz, assets, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, registryz.AddAsset(ctx, core.NewAuth("admin"), &core.AssetConfig{Symbol: "USDT"}))

	caps := core.AssetCaps{
		TotalSupplyCap: decimal.NewFromInt(1000000),
		PerTxBorrowCap: decimal.NewFromInt(5000),
	}
	require.ErrorIs(t, registryz.SetCaps(ctx, core.NewAuth("mallory"), "USDT", caps), core.ErrNotAdmin)

	require.NoError(t, registryz.SetCaps(ctx, core.NewAuth("admin"), "USDT", caps))
	require.True(t, assets["USDT"].TotalSupplyCap.Equal(decimal.NewFromInt(1000000)))
	require.True(t, assets["USDT"].PerTxBorrowCap.Equal(decimal.NewFromInt(5000)))
}

func TestSetPaused(t *testing.T) {
	registryz, _, _ := newTestService()
	ctx := context.Background()

	paused, err := registryz.IsPaused(ctx)
	require.NoError(t, err)
	require.False(t, paused)

	require.ErrorIs(t, registryz.SetPaused(ctx, core.NewAuth("mallory"), true), core.ErrNotAdmin)

	require.NoError(t, registryz.SetPaused(ctx, core.NewAuth("admin"), true))
	paused, err = registryz.IsPaused(ctx)
	require.NoError(t, err)
	require.True(t, paused)

	require.NoError(t, registryz.SetPaused(ctx, core.NewAuth("admin"), false))
	paused, err = registryz.IsPaused(ctx)
	require.NoError(t, err)
	require.False(t, paused)
}

func TestGlobalParams(t *testing.T) {
	registryz, _, _ := newTestService()
	ctx := context.Background()

	// defaults until an admin writes them
	params, err := registryz.GlobalParams(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1000), params.ReserveFactorGlobalBps)
	require.Equal(t, int64(5000), params.PenaltySplitBps)
	require.Equal(t, int64(86400000), params.EpochLengthMs)

	require.ErrorIs(t, registryz.SetGlobalParams(ctx, core.NewAuth("mallory"), core.GlobalParams{}), core.ErrNotAdmin)
	require.ErrorIs(t, registryz.SetGlobalParams(ctx, core.NewAuth("admin"), core.GlobalParams{
		ReserveFactorGlobalBps: 10001,
	}), core.ErrInvalidRiskParams)

	require.NoError(t, registryz.SetGlobalParams(ctx, core.NewAuth("admin"), core.GlobalParams{
		ReserveFactorGlobalBps: 0,
		AccrualGranularityMs:   60000,
		PenaltySplitBps:        0,
		EpochLengthMs:          3600000,
		GenesisMs:              1,
	}))

	// explicit zeros survive the round trip instead of reverting to defaults
	params, err = registryz.GlobalParams(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), params.ReserveFactorGlobalBps)
	require.Equal(t, int64(0), params.PenaltySplitBps)
	require.Equal(t, int64(60000), params.AccrualGranularityMs)
	require.Equal(t, int64(3600000), params.EpochLengthMs)
	require.Equal(t, int64(1), params.GenesisMs)
}
