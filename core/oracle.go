package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Price a freshness-checked scaled price for one symbol
type Price struct {
	Symbol       string          `json:"symbol"`
	PriceScaled  decimal.Decimal `json:"price_scaled"`
	ObservedAtMs int64           `json:"observed_at_ms"`
}

// PriceSet ephemeral per-call price snapshot, never persisted
type PriceSet map[string]Price

// Get price for symbol
func (s PriceSet) Get(symbol string) (Price, bool) {
	p, ok := s[symbol]
	return p, ok
}

// IPriceOracleService price oracle interface.
//
// The ledger must fail with an oracle error rather than substitute a
// default when the oracle is unavailable, stale or priceless.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, symbol string, nowMs int64) (Price, error)
}
