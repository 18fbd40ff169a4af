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

// Borrow draws amount from the pool against the account's collateral.
// Fails LtvViolation if the aggregate borrow value would exceed the
// ltv-weighted collateral value under the same price snapshot.
func (s *service) Borrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("op", "borrow")

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

	if !asset.IsBorrowable {
		return core.ErrNotBorrowable
	}

	paused, err := s.registry.IsPaused(ctx)
	if err != nil {
		return err
	}
	if paused {
		return core.ErrPaused
	}

	if asset.PerTxBorrowCap.IsPositive() && amount.GreaterThan(asset.PerTxBorrowCap) {
		return core.ErrCapExceeded
	}
	if asset.TotalBorrowCap.IsPositive() && pool.TotalBorrowUnits().Add(amount).GreaterThan(asset.TotalBorrowCap) {
		return core.ErrCapExceeded
	}

	if amount.GreaterThan(pool.Cash) {
		return core.ErrInsufficientLiquidity
	}

	prices, err := s.accountz.BuildPriceSet(ctx, userID, []string{symbol}, nowMs)
	if err != nil {
		return err
	}

	portfolio, err := s.accountz.Portfolio(ctx, userID, prices)
	if err != nil {
		return err
	}

	price, _ := prices.Get(symbol)
	addedValue := amount.Mul(price.PriceScaled).Truncate(internal.AmountPricision)
	if portfolio.BorrowValue.Add(addedValue).GreaterThan(portfolio.BorrowLimit) {
		return core.ErrLtvViolation
	}

	position, err := s.accountStore.Find(ctx, userID, symbol)
	if err != nil {
		return err
	}

	// the recorded debt rounds up so the dust stays with the pool
	scaled := number.CeilDiv(amount, pool.BorrowIndex, internal.MaxPricision)
	position.BorrowScaled = position.BorrowScaled.Add(scaled)
	pool.TotalBorrowScaled = pool.TotalBorrowScaled.Add(scaled)
	pool.Cash = pool.Cash.Sub(amount)

	log.WithField("symbol", symbol).Debugln("borrow", amount)

	return s.tx(func(tx *db.DB) error {
		if err := s.persistPosition(ctx, tx, position); err != nil {
			return err
		}

		return s.poolStore.Update(ctx, tx, pool)
	})
}

// Repay pays amount against the account's outstanding debt. Overpayment
// is rejected, never clamped: the caller computes the exact debt first.
func (s *service) Repay(ctx context.Context, userID, symbol string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("op", "repay")

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

	position, err := s.accountStore.Find(ctx, userID, symbol)
	if err != nil {
		return err
	}

	debtUnits := internal.UnitsFromScaled(position.BorrowScaled, pool.BorrowIndex)
	if amount.GreaterThan(debtUnits) {
		return core.ErrRepayExceedsDebt
	}

	scaled := number.FloorDiv(amount, pool.BorrowIndex, internal.MaxPricision)
	if scaled.GreaterThan(position.BorrowScaled) {
		scaled = position.BorrowScaled
	}

	position.BorrowScaled = position.BorrowScaled.Sub(scaled)
	pool.TotalBorrowScaled = pool.TotalBorrowScaled.Sub(scaled)
	pool.Cash = pool.Cash.Add(amount)

	log.WithField("symbol", symbol).Debugln("repay", amount)

	return s.tx(func(tx *db.DB) error {
		if err := s.persistPosition(ctx, tx, position); err != nil {
			return err
		}

		return s.poolStore.Update(ctx, tx, pool)
	})
}
