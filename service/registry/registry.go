package registry

import (
	"context"
	"encoding/json"
	"time"

	"lend/core"
	"lend/internal/ledger"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// property keys. the paused flag is stored as 1/0 and the global params
// as a single json blob so explicit zero values survive the round trip.
const (
	pausedKey       = "ledger_paused"
	globalParamsKey = "global_params"
)

// defaults applied until SetGlobalParams is called
const (
	defaultReserveFactorGlobalBps = 1000
	defaultPenaltySplitBps        = 5000
	defaultEpochLengthMs          = 86400000
)

const maxBps = 10000

type service struct {
	system        *core.System
	db            *db.DB
	assetStore    core.IAssetStore
	poolStore     core.IPoolStore
	propertyStore property.Store
	clock         func() time.Time
}

// New new registry service
func New(
	system *core.System,
	db *db.DB,
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	propertyStore property.Store,
) core.IRegistryService {
	return NewWithClock(system, db, assetStore, poolStore, propertyStore, time.Now)
}

// NewWithClock registry service with an explicit clock
func NewWithClock(
	system *core.System,
	db *db.DB,
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	propertyStore property.Store,
	clock func() time.Time,
) core.IRegistryService {
	return &service{
		system:        system,
		db:            db,
		assetStore:    assetStore,
		poolStore:     poolStore,
		propertyStore: propertyStore,
		clock:         clock,
	}
}

// AddAsset registers the asset config and initializes its pool.
func (s *service) AddAsset(ctx context.Context, auth *core.AuthContext, asset *core.AssetConfig) error {
	if err := s.requireAdmin(auth); err != nil {
		return err
	}

	if err := validateRiskParams(asset.LoanToValueBps, asset.LiquidationThresholdBps, asset.LiquidationPenaltyBps); err != nil {
		return err
	}

	existing, err := s.assetStore.Find(ctx, asset.Symbol)
	if err != nil {
		return err
	}
	if existing.ID > 0 {
		return core.ErrDuplicateAsset
	}

	return s.tx(func(tx *db.DB) error {
		if err := s.assetStore.Save(ctx, tx, asset); err != nil {
			return err
		}

		pool := &core.Pool{
			Symbol:            asset.Symbol,
			Cash:              decimal.Zero,
			TotalSupplyScaled: decimal.Zero,
			TotalBorrowScaled: decimal.Zero,
			SupplyIndex:       ledger.One,
			BorrowIndex:       ledger.One,
			Reserves:          decimal.Zero,
			LastAccrualTsMs:   s.clock().UnixMilli(),
		}

		return s.poolStore.Save(ctx, tx, pool)
	})
}

func (s *service) SetCaps(ctx context.Context, auth *core.AuthContext, symbol string, caps core.AssetCaps) error {
	if err := s.requireAdmin(auth); err != nil {
		return err
	}

	asset, err := s.mustFind(ctx, symbol)
	if err != nil {
		return err
	}

	asset.TotalSupplyCap = caps.TotalSupplyCap
	asset.TotalBorrowCap = caps.TotalBorrowCap
	asset.PerTxSupplyCap = caps.PerTxSupplyCap
	asset.PerTxBorrowCap = caps.PerTxBorrowCap

	return s.tx(func(tx *db.DB) error {
		return s.assetStore.Update(ctx, tx, asset)
	})
}

func (s *service) SetRiskParams(ctx context.Context, auth *core.AuthContext, symbol string, ltvBps, liqThresholdBps, penaltyBps int64) error {
	if err := s.requireAdmin(auth); err != nil {
		return err
	}

	if err := validateRiskParams(ltvBps, liqThresholdBps, penaltyBps); err != nil {
		return err
	}

	asset, err := s.mustFind(ctx, symbol)
	if err != nil {
		return err
	}

	asset.LoanToValueBps = ltvBps
	asset.LiquidationThresholdBps = liqThresholdBps
	asset.LiquidationPenaltyBps = penaltyBps

	return s.tx(func(tx *db.DB) error {
		return s.assetStore.Update(ctx, tx, asset)
	})
}

func (s *service) SetGlobalParams(ctx context.Context, auth *core.AuthContext, params core.GlobalParams) error {
	if err := s.requireAdmin(auth); err != nil {
		return err
	}

	if params.ReserveFactorGlobalBps < 0 || params.ReserveFactorGlobalBps > maxBps ||
		params.PenaltySplitBps < 0 || params.PenaltySplitBps > maxBps {
		return core.ErrInvalidRiskParams
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}

	return s.propertyStore.Save(ctx, globalParamsKey, string(raw))
}

func (s *service) SetPaused(ctx context.Context, auth *core.AuthContext, paused bool) error {
	if err := s.requireAdmin(auth); err != nil {
		return err
	}

	var flag int64
	if paused {
		flag = 1
	}

	return s.propertyStore.Save(ctx, pausedKey, flag)
}

func (s *service) IsPaused(ctx context.Context) (bool, error) {
	v, err := s.propertyStore.Get(ctx, pausedKey)
	if err != nil {
		return false, err
	}

	return v.Int64() > 0, nil
}

func (s *service) GlobalParams(ctx context.Context) (*core.GlobalParams, error) {
	v, err := s.propertyStore.Get(ctx, globalParamsKey)
	if err != nil {
		return nil, err
	}

	if raw := v.String(); raw != "" {
		var params core.GlobalParams
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return nil, err
		}

		return &params, nil
	}

	return &core.GlobalParams{
		ReserveFactorGlobalBps: defaultReserveFactorGlobalBps,
		PenaltySplitBps:        defaultPenaltySplitBps,
		EpochLengthMs:          defaultEpochLengthMs,
	}, nil
}

func (s *service) requireAdmin(auth *core.AuthContext) error {
	if auth == nil || !s.system.IsAdmin(auth.CallerID) {
		return core.ErrNotAdmin
	}

	return nil
}

func (s *service) mustFind(ctx context.Context, symbol string) (*core.AssetConfig, error) {
	asset, err := s.assetStore.Find(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if asset.ID == 0 {
		return nil, core.ErrAssetNotFound
	}

	return asset, nil
}

func (s *service) tx(fn func(tx *db.DB) error) error {
	// fake stores in tests run without a database
	if s.db == nil {
		return fn(nil)
	}

	return s.db.Tx(fn)
}

func validateRiskParams(ltvBps, liqThresholdBps, penaltyBps int64) error {
	if ltvBps < 0 || ltvBps > maxBps {
		return core.ErrInvalidRiskParams
	}
	if liqThresholdBps < ltvBps || liqThresholdBps > maxBps {
		return core.ErrInvalidRiskParams
	}
	if penaltyBps < 0 || penaltyBps > maxBps {
		return core.ErrInvalidRiskParams
	}

	return nil
}
