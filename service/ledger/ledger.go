package ledger

import (
	"context"
	"time"

	"lend/core"
	"lend/internal/ledger"
	"lend/pkg/concurrency"

	"github.com/fox-one/pkg/store/db"
)

type service struct {
	db            *db.DB
	system        *core.System
	assetStore    core.IAssetStore
	poolStore     core.IPoolStore
	accountStore  core.IAccountStore
	registry      core.IRegistryService
	poolz         core.IPoolService
	accountz      core.IAccountService
	treasuryz     core.ITreasuryService
	locker        *concurrency.KeyedLocker
	clock         func() time.Time
}

// New new ledger service
func New(
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
	return NewWithClock(db, system, assetStore, poolStore, accountStore, registry, poolz, accountz, treasuryz, time.Now)
}

// NewWithClock ledger service with an explicit clock
func NewWithClock(
	db *db.DB,
	system *core.System,
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	accountStore core.IAccountStore,
	registry core.IRegistryService,
	poolz core.IPoolService,
	accountz core.IAccountService,
	treasuryz core.ITreasuryService,
	clock func() time.Time,
) core.ILedgerService {
	return &service{
		db:           db,
		system:       system,
		assetStore:   assetStore,
		poolStore:    poolStore,
		accountStore: accountStore,
		registry:     registry,
		poolz:        poolz,
		accountz:     accountz,
		treasuryz:    treasuryz,
		locker:       concurrency.NewKeyedLocker(),
		clock:        clock,
	}
}

func (s *service) nowMs() int64 {
	return s.clock().UnixMilli()
}

// UpdateRates accrues the pool without any balance mutation.
func (s *service) UpdateRates(ctx context.Context, symbol string) error {
	s.locker.Lock(symbol)
	defer s.locker.Unlock(symbol)

	asset, pool, err := s.mustGetAssetPool(ctx, symbol)
	if err != nil {
		return err
	}

	if err := s.poolz.Accrue(ctx, pool, asset, s.nowMs()); err != nil {
		return err
	}

	return s.tx(func(tx *db.DB) error {
		return s.poolStore.Update(ctx, tx, pool)
	})
}

func (s *service) mustGetAssetPool(ctx context.Context, symbol string) (*core.AssetConfig, *core.Pool, error) {
	asset, err := s.assetStore.Find(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}
	if asset.ID == 0 {
		return nil, nil, core.ErrAssetNotFound
	}

	pool, err := s.poolStore.Find(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}
	if pool.ID == 0 {
		return nil, nil, core.ErrAssetNotFound
	}

	return asset, pool, nil
}

func (s *service) persistPosition(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return s.accountStore.Save(ctx, tx, position)
	}

	return s.accountStore.Update(ctx, tx, position)
}

func (s *service) hasDebt(ctx context.Context, userID string) (bool, error) {
	positions, err := s.accountStore.FindByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, p := range positions {
		if p.BorrowScaled.IsPositive() {
			return true, nil
		}
	}

	return false, nil
}

func (s *service) currentEpoch(params *core.GlobalParams, nowMs int64) int64 {
	epoch, err := ledger.CurrentEpoch(nowMs, params.GenesisMs, params.EpochLengthMs)
	if err != nil {
		return 0
	}

	return epoch
}

func (s *service) tx(fn func(tx *db.DB) error) error {
	// fake stores in tests run without a database
	if s.db == nil {
		return fn(nil)
	}

	return s.db.Tx(fn)
}
