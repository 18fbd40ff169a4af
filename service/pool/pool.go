package pool

import (
	"context"

	"lend/core"
	"lend/internal/ledger"

	"github.com/shopspring/decimal"
)

type service struct {
	registry core.IRegistryService
}

// New new pool service
func New(registry core.IRegistryService) core.IPoolService {
	return &service{
		registry: registry,
	}
}

// Accrue moves borrow/supply indices up to nowMs.
//
// Runs as the first step of every mutating operation on the pool, before
// any scaled conversion. A reserveFactor share of the accrued interest is
// retained, the remainder grows the supply index for every holder at once.
func (s *service) Accrue(ctx context.Context, pool *core.Pool, asset *core.AssetConfig, nowMs int64) error {
	if pool.SupplyIndex.LessThanOrEqual(decimal.Zero) {
		pool.SupplyIndex = ledger.One
	}
	if pool.BorrowIndex.LessThanOrEqual(decimal.Zero) {
		pool.BorrowIndex = ledger.One
	}

	if pool.LastAccrualTsMs == 0 {
		pool.LastAccrualTsMs = nowMs
		return nil
	}

	deltaMs := nowMs - pool.LastAccrualTsMs
	if deltaMs <= 0 {
		return nil
	}

	params, err := s.registry.GlobalParams(ctx)
	if err != nil {
		return err
	}

	if params.AccrualGranularityMs > 0 && deltaMs < params.AccrualGranularityMs {
		return nil
	}

	dt := decimal.New(deltaMs, -3)

	borrows := pool.TotalBorrowUnits()
	utilizationRate := ledger.UtilizationRate(pool.Cash, borrows)
	borrowRate := ledger.GetBorrowRatePerSecond(
		utilizationRate,
		asset.BaseRate(),
		asset.SlopeBelowKink(),
		asset.SlopeAboveKink(),
		asset.KinkUtilization(),
	)

	interestAccumulated := borrows.Mul(borrowRate).Mul(dt).Truncate(ledger.AmountPricision)
	reserveShare := interestAccumulated.Mul(asset.ReserveFactor(params.ReserveFactorGlobalBps)).Truncate(ledger.AmountPricision)

	pool.BorrowIndex = ledger.GrowIndex(pool.BorrowIndex, borrowRate, dt)

	supplyUnits := pool.TotalSupplyUnits()
	supplyShare := interestAccumulated.Sub(reserveShare)
	if supplyUnits.GreaterThan(decimal.Zero) && supplyShare.GreaterThan(decimal.Zero) {
		growth, _ := supplyShare.QuoRem(supplyUnits, ledger.MaxPricision)
		pool.SupplyIndex = pool.SupplyIndex.Mul(ledger.One.Add(growth)).Truncate(ledger.MaxPricision)
	}

	pool.Reserves = pool.Reserves.Add(reserveShare).Truncate(ledger.AmountPricision)
	pool.LastAccrualTsMs = nowMs

	return nil
}

func (s *service) CurUtilizationRate(ctx context.Context, pool *core.Pool) decimal.Decimal {
	return ledger.UtilizationRate(pool.Cash, pool.TotalBorrowUnits())
}

func (s *service) CurBorrowRatePerSecond(ctx context.Context, pool *core.Pool, asset *core.AssetConfig) decimal.Decimal {
	return ledger.GetBorrowRatePerSecond(
		s.CurUtilizationRate(ctx, pool),
		asset.BaseRate(),
		asset.SlopeBelowKink(),
		asset.SlopeAboveKink(),
		asset.KinkUtilization(),
	)
}

func (s *service) CurSupplyRatePerSecond(ctx context.Context, pool *core.Pool, asset *core.AssetConfig) decimal.Decimal {
	params, err := s.registry.GlobalParams(ctx)
	if err != nil {
		return decimal.Zero
	}

	reserveFactor := asset.ReserveFactor(params.ReserveFactorGlobalBps)
	return ledger.GetSupplyRatePerSecond(
		s.CurUtilizationRate(ctx, pool),
		asset.BaseRate(),
		asset.SlopeBelowKink(),
		asset.SlopeAboveKink(),
		asset.KinkUtilization(),
		reserveFactor,
	)
}
