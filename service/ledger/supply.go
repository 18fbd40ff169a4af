package ledger

import (
	"context"

	"lend/core"
	internal "lend/internal/ledger"
	"lend/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Supply deposits amount into the asset's pool and credits the account
// with scaled units at the current supply index.
func (s *service) Supply(ctx context.Context, userID, symbol string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("op", "supply")

	amount = amount.Truncate(internal.AmountPricision)
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	s.locker.Lock(symbol)
	defer s.locker.Unlock(symbol)

	asset, pool, err := s.mustGetAssetPool(ctx, symbol)
	if err != nil {
		return err
	}

	if err := s.poolz.Accrue(ctx, pool, asset, s.nowMs()); err != nil {
		return err
	}

	paused, err := s.registry.IsPaused(ctx)
	if err != nil {
		return err
	}
	if paused {
		return core.ErrPaused
	}

	if asset.PerTxSupplyCap.IsPositive() && amount.GreaterThan(asset.PerTxSupplyCap) {
		return core.ErrCapExceeded
	}
	if asset.TotalSupplyCap.IsPositive() && pool.TotalSupplyUnits().Add(amount).GreaterThan(asset.TotalSupplyCap) {
		return core.ErrCapExceeded
	}

	position, err := s.accountStore.Find(ctx, userID, symbol)
	if err != nil {
		return err
	}

	scaled := internal.ScaledFromUnits(amount, pool.SupplyIndex)
	position.SupplyScaled = position.SupplyScaled.Add(scaled)
	pool.TotalSupplyScaled = pool.TotalSupplyScaled.Add(scaled)
	pool.Cash = pool.Cash.Add(amount)

	log.WithField("symbol", symbol).Debugln("supply", amount)

	return s.tx(func(tx *db.DB) error {
		if err := s.persistPosition(ctx, tx, position); err != nil {
			return err
		}

		return s.poolStore.Update(ctx, tx, pool)
	})
}

// Withdraw debits amount from the account's supply. The ltv check runs
// against the remaining portfolio after the tentative debit: withdrawing
// reduces collateral, never debt.
func (s *service) Withdraw(ctx context.Context, userID, symbol string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("op", "withdraw")

	amount = amount.Truncate(internal.AmountPricision)
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	s.locker.Lock(symbol)
	defer s.locker.Unlock(symbol)

	asset, pool, err := s.mustGetAssetPool(ctx, symbol)
	if err != nil {
		return err
	}

	nowMs := s.nowMs()
	if err := s.poolz.Accrue(ctx, pool, asset, nowMs); err != nil {
		return err
	}

	if amount.GreaterThan(pool.Cash) {
		return core.ErrInsufficientLiquidity
	}

	position, err := s.accountStore.Find(ctx, userID, symbol)
	if err != nil {
		return err
	}

	supplyUnits := internal.UnitsFromScaled(position.SupplyScaled, pool.SupplyIndex)
	if amount.GreaterThan(supplyUnits) {
		return core.ErrInsufficientBalance
	}

	// the scaled debit rounds up so the dust stays with the pool
	scaled := number.CeilDiv(amount, pool.SupplyIndex, internal.MaxPricision)
	if scaled.GreaterThan(position.SupplyScaled) {
		scaled = position.SupplyScaled
	}

	indebted, err := s.hasDebt(ctx, userID)
	if err != nil {
		return err
	}

	if indebted && asset.IsCollateral {
		prices, err := s.accountz.BuildPriceSet(ctx, userID, []string{symbol}, nowMs)
		if err != nil {
			return err
		}

		portfolio, err := s.accountz.Portfolio(ctx, userID, prices)
		if err != nil {
			return err
		}

		price, _ := prices.Get(symbol)
		removedLimit := amount.Mul(price.PriceScaled).Mul(asset.LoanToValue()).Truncate(internal.AmountPricision)
		if portfolio.BorrowValue.GreaterThan(portfolio.BorrowLimit.Sub(removedLimit)) {
			return core.ErrLtvViolation
		}
	}

	position.SupplyScaled = position.SupplyScaled.Sub(scaled)
	pool.TotalSupplyScaled = pool.TotalSupplyScaled.Sub(scaled)
	pool.Cash = pool.Cash.Sub(amount)

	log.WithField("symbol", symbol).Debugln("withdraw", amount)

	return s.tx(func(tx *db.DB) error {
		if err := s.persistPosition(ctx, tx, position); err != nil {
			return err
		}

		return s.poolStore.Update(ctx, tx, pool)
	})
}
