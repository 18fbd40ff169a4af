package ledger

import (
	"context"

	"lend/core"
	internal "lend/internal/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// SkimReserves forwards accumulated reserves to the treasury tagged with
// the current epoch. Keeper or admin gated.
func (s *service) SkimReserves(ctx context.Context, auth *core.AuthContext, symbol string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("op", "skim")

	if auth == nil || !s.system.IsAdmin(auth.CallerID) {
		return core.ErrNotAdmin
	}

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

	if amount.GreaterThan(pool.Reserves) {
		return core.ErrExceedsReserves
	}
	// skimmed reserves leave the pool in cash
	if amount.GreaterThan(pool.Cash) {
		return core.ErrInsufficientLiquidity
	}

	pool.Reserves = pool.Reserves.Sub(amount)
	pool.Cash = pool.Cash.Sub(amount)

	params, err := s.registry.GlobalParams(ctx)
	if err != nil {
		return err
	}
	epoch := s.currentEpoch(params, nowMs)

	log.WithField("symbol", symbol).Infoln("skim reserves", amount)

	return s.tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		return s.treasuryz.DepositFee(ctx, tx, symbol, amount, epoch, "reserve skim")
	})
}
