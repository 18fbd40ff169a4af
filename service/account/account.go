package account

import (
	"context"
	"fmt"

	"lend/core"
	"lend/internal/ledger"

	"github.com/shopspring/decimal"
)

type accountService struct {
	assetStore   core.IAssetStore
	poolStore    core.IPoolStore
	accountStore core.IAccountStore
	priceService core.IPriceOracleService
}

// New new account service
func New(
	assetStore core.IAssetStore,
	poolStore core.IPoolStore,
	accountStore core.IAccountStore,
	priceService core.IPriceOracleService,
) core.IAccountService {
	return &accountService{
		assetStore:   assetStore,
		poolStore:    poolStore,
		accountStore: accountStore,
		priceService: priceService,
	}
}

// BuildPriceSet queries the oracle once per symbol. Any oracle failure
// aborts the calling operation; the ledger never falls back to a default
// or cached price.
func (s *accountService) BuildPriceSet(ctx context.Context, userID string, extraSymbols []string, nowMs int64) (core.PriceSet, error) {
	positions, err := s.accountStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	symbols := make(map[string]bool)
	for _, p := range positions {
		symbols[p.Symbol] = true
	}
	for _, symbol := range extraSymbols {
		symbols[symbol] = true
	}

	prices := make(core.PriceSet, len(symbols))
	for symbol := range symbols {
		price, err := s.priceService.GetPrice(ctx, symbol, nowMs)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", core.ErrOracle, symbol, err)
		}

		prices[symbol] = price
	}

	return prices, nil
}

// Portfolio values every position the account touches with a single price
// snapshot. Collateral is weighted by price and ltv for the borrow limit
// and by price and liquidation threshold for the liquidation limit.
func (s *accountService) Portfolio(ctx context.Context, userID string, prices core.PriceSet) (*core.Portfolio, error) {
	positions, err := s.accountStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	portfolio := &core.Portfolio{
		SupplyValue:      decimal.Zero,
		BorrowLimit:      decimal.Zero,
		LiquidationLimit: decimal.Zero,
		BorrowValue:      decimal.Zero,
	}

	for _, position := range positions {
		if position.SupplyScaled.IsZero() && position.BorrowScaled.IsZero() {
			continue
		}

		asset, err := s.assetStore.Find(ctx, position.Symbol)
		if err != nil {
			return nil, err
		}
		if asset.ID == 0 {
			return nil, core.ErrAssetNotFound
		}

		pool, err := s.poolStore.Find(ctx, position.Symbol)
		if err != nil {
			return nil, err
		}
		if pool.ID == 0 {
			return nil, core.ErrAssetNotFound
		}

		price, ok := prices.Get(position.Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %v", core.ErrOracle, position.Symbol, core.ErrUnknownSymbol)
		}

		if position.SupplyScaled.GreaterThan(decimal.Zero) {
			units := ledger.UnitsFromScaled(position.SupplyScaled, pool.SupplyIndex)
			value := units.Mul(price.PriceScaled).Truncate(ledger.AmountPricision)
			portfolio.SupplyValue = portfolio.SupplyValue.Add(value)

			if asset.IsCollateral {
				portfolio.BorrowLimit = portfolio.BorrowLimit.Add(value.Mul(asset.LoanToValue()).Truncate(ledger.AmountPricision))
				portfolio.LiquidationLimit = portfolio.LiquidationLimit.Add(value.Mul(asset.LiquidationThreshold()).Truncate(ledger.AmountPricision))
			}
		}

		if position.BorrowScaled.GreaterThan(decimal.Zero) {
			units := ledger.UnitsFromScaled(position.BorrowScaled, pool.BorrowIndex)
			value := units.Mul(price.PriceScaled).Truncate(ledger.AmountPricision)
			portfolio.BorrowValue = portfolio.BorrowValue.Add(value)
		}
	}

	return portfolio, nil
}
