package ledger

import (
	"context"

	"lend/core"
	internal "lend/internal/ledger"
	"lend/pkg/id"
	"lend/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// InitiateFlashLoan debits cash immediately. Flash loans live and die
// inside one atomic host call, so they never touch the interest indices.
func (s *service) InitiateFlashLoan(ctx context.Context, symbol string, amount decimal.Decimal) (*core.FlashLoan, error) {
	amount = amount.Truncate(internal.AmountPricision)
	if !amount.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	s.locker.Lock(symbol)
	defer s.locker.Unlock(symbol)

	_, pool, err := s.mustGetAssetPool(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(pool.Cash) {
		return nil, core.ErrInsufficientLiquidity
	}

	pool.Cash = pool.Cash.Sub(amount)

	if err := s.tx(func(tx *db.DB) error {
		return s.poolStore.Update(ctx, tx, pool)
	}); err != nil {
		return nil, err
	}

	return &core.FlashLoan{
		TraceID:     id.GenTraceID(),
		Symbol:      symbol,
		Amount:      amount,
		StartedAtMs: s.nowMs(),
	}, nil
}

// RepayFlashLoan returns the principal plus a fee of at least
// amount * feeBps / 10000. The principal restores cash, the fee is
// forwarded to the treasury with the current epoch id.
func (s *service) RepayFlashLoan(ctx context.Context, loan *core.FlashLoan, repayAmount decimal.Decimal, feeBps int64) error {
	log := logger.FromContext(ctx).WithField("op", "flashloan")

	repayAmount = repayAmount.Truncate(internal.AmountPricision)

	s.locker.Lock(loan.Symbol)
	defer s.locker.Unlock(loan.Symbol)

	_, pool, err := s.mustGetAssetPool(ctx, loan.Symbol)
	if err != nil {
		return err
	}

	minFee := number.FloorMul(loan.Amount, number.Bps(feeBps), internal.AmountPricision)
	if repayAmount.LessThan(loan.Amount.Add(minFee)) {
		return core.ErrFlashLoanUnderpaid
	}

	fee := repayAmount.Sub(loan.Amount)
	pool.Cash = pool.Cash.Add(loan.Amount)

	params, err := s.registry.GlobalParams(ctx)
	if err != nil {
		return err
	}
	epoch := s.currentEpoch(params, s.nowMs())

	log.WithField("symbol", loan.Symbol).Debugln("flash loan repaid", repayAmount, "fee", fee)

	return s.tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		if fee.IsPositive() {
			return s.treasuryz.DepositFee(ctx, tx, loan.Symbol, fee, epoch, loan.TraceID)
		}

		return nil
	})
}
