package ledger

import (
	"context"
	"sort"

	"lend/core"
	internal "lend/internal/ledger"
	"lend/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Liquidate repays payment of the borrower's debt and seizes collateral
// plus the liquidation penalty. The liquidator is credited with the
// seized collateral minus the penalty split, the split is routed to the
// treasury. Calling again on a healthy position fails PositionHealthy.
func (s *service) Liquidate(ctx context.Context, liquidatorID, borrowerID, debtSymbol, collateralSymbol string, payment decimal.Decimal) (*core.LiquidationResult, error) {
	log := logger.FromContext(ctx).WithField("op", "liquidate")

	payment = payment.Truncate(internal.AmountPricision)
	if !payment.IsPositive() {
		return nil, core.ErrZeroAmount
	}

	for _, symbol := range lockOrder(debtSymbol, collateralSymbol) {
		s.locker.Lock(symbol)
		defer s.locker.Unlock(symbol)
	}

	debtAsset, debtPool, err := s.mustGetAssetPool(ctx, debtSymbol)
	if err != nil {
		return nil, err
	}
	collatAsset, collatPool, err := s.mustGetAssetPool(ctx, collateralSymbol)
	if err != nil {
		return nil, err
	}

	if !collatAsset.IsCollateral {
		return nil, core.ErrNotCollateral
	}

	nowMs := s.nowMs()
	if err := s.poolz.Accrue(ctx, debtPool, debtAsset, nowMs); err != nil {
		return nil, err
	}
	if err := s.poolz.Accrue(ctx, collatPool, collatAsset, nowMs); err != nil {
		return nil, err
	}

	prices, err := s.accountz.BuildPriceSet(ctx, borrowerID, []string{debtSymbol, collateralSymbol}, nowMs)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.accountz.Portfolio(ctx, borrowerID, prices)
	if err != nil {
		return nil, err
	}

	if !portfolio.IsLiquidatable() {
		return nil, core.ErrPositionHealthy
	}

	debtPosition, err := s.accountStore.Find(ctx, borrowerID, debtSymbol)
	if err != nil {
		return nil, err
	}

	debtUnits := internal.UnitsFromScaled(debtPosition.BorrowScaled, debtPool.BorrowIndex)
	if payment.GreaterThan(debtUnits) {
		return nil, core.ErrRepayExceedsDebt
	}

	collatPosition, err := s.accountStore.Find(ctx, borrowerID, collateralSymbol)
	if err != nil {
		return nil, err
	}

	debtPrice, _ := prices.Get(debtSymbol)
	collatPrice, _ := prices.Get(collateralSymbol)

	paymentValue := payment.Mul(debtPrice.PriceScaled).Truncate(internal.AmountPricision)
	onePlusPenalty := internal.One.Add(collatAsset.LiquidationPenalty())

	seizedUnits := number.FloorDiv(paymentValue.Mul(onePlusPenalty), collatPrice.PriceScaled, internal.AmountPricision)
	baseUnits := number.FloorDiv(paymentValue, collatPrice.PriceScaled, internal.AmountPricision)

	collateralUnits := internal.UnitsFromScaled(collatPosition.SupplyScaled, collatPool.SupplyIndex)
	if seizedUnits.GreaterThan(collateralUnits) {
		return nil, core.ErrInsufficientBalance
	}

	params, err := s.registry.GlobalParams(ctx)
	if err != nil {
		return nil, err
	}

	bonusUnits := seizedUnits.Sub(baseUnits)
	penaltyToTreasury := bonusUnits.Mul(number.Bps(params.PenaltySplitBps)).Truncate(internal.AmountPricision)
	liquidatorCut := seizedUnits.Sub(penaltyToTreasury)

	// the treasury share physically leaves the collateral pool
	if penaltyToTreasury.GreaterThan(collatPool.Cash) {
		return nil, core.ErrInsufficientLiquidity
	}

	// debt leg
	debtScaled := number.FloorDiv(payment, debtPool.BorrowIndex, internal.MaxPricision)
	if debtScaled.GreaterThan(debtPosition.BorrowScaled) {
		debtScaled = debtPosition.BorrowScaled
	}
	debtPosition.BorrowScaled = debtPosition.BorrowScaled.Sub(debtScaled)
	debtPool.TotalBorrowScaled = debtPool.TotalBorrowScaled.Sub(debtScaled)
	debtPool.Cash = debtPool.Cash.Add(payment)

	// collateral leg
	seizedScaled := number.CeilDiv(seizedUnits, collatPool.SupplyIndex, internal.MaxPricision)
	if seizedScaled.GreaterThan(collatPosition.SupplyScaled) {
		seizedScaled = collatPosition.SupplyScaled
	}
	collatPosition.SupplyScaled = collatPosition.SupplyScaled.Sub(seizedScaled)
	collatPool.TotalSupplyScaled = collatPool.TotalSupplyScaled.Sub(seizedScaled)

	liquidatorPosition, err := s.accountStore.Find(ctx, liquidatorID, collateralSymbol)
	if err != nil {
		return nil, err
	}
	liquidatorScaled := internal.ScaledFromUnits(liquidatorCut, collatPool.SupplyIndex)
	liquidatorPosition.SupplyScaled = liquidatorPosition.SupplyScaled.Add(liquidatorScaled)
	collatPool.TotalSupplyScaled = collatPool.TotalSupplyScaled.Add(liquidatorScaled)

	collatPool.Cash = collatPool.Cash.Sub(penaltyToTreasury)

	epoch := s.currentEpoch(params, nowMs)

	log.WithField("borrower", borrowerID).Infoln("liquidate", debtSymbol, payment, "seized", seizedUnits)

	err = s.tx(func(tx *db.DB) error {
		if err := s.persistPosition(ctx, tx, debtPosition); err != nil {
			return err
		}
		if err := s.persistPosition(ctx, tx, collatPosition); err != nil {
			return err
		}
		if err := s.persistPosition(ctx, tx, liquidatorPosition); err != nil {
			return err
		}
		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
			return err
		}
		if err := s.poolStore.Update(ctx, tx, collatPool); err != nil {
			return err
		}

		if penaltyToTreasury.IsPositive() {
			return s.treasuryz.DepositPenalty(ctx, tx, collateralSymbol, penaltyToTreasury, epoch, liquidatorID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &core.LiquidationResult{
		Payment:           payment,
		SeizedUnits:       seizedUnits,
		LiquidatorCut:     liquidatorCut,
		PenaltyToTreasury: penaltyToTreasury,
	}, nil
}

func lockOrder(symbols ...string) []string {
	uniq := make([]string, 0, len(symbols))
	seen := make(map[string]bool)
	for _, s := range symbols {
		if !seen[s] {
			seen[s] = true
			uniq = append(uniq, s)
		}
	}

	sort.Strings(uniq)
	return uniq
}
