package oracle

import (
	"context"
	"net/http"

	"lend/core"
	"lend/pkg/resthttp"

	"github.com/shopspring/decimal"
)

type priceView struct {
	Symbol       string          `json:"symbol"`
	Price        decimal.Decimal `json:"price"`
	ObservedAtMs int64           `json:"observed_at_ms"`
}

type service struct {
	cfg *core.Oracle
}

// New price oracle client over the configured endpoint
func New(cfg *core.Oracle) core.IPriceOracleService {
	return &service{cfg: cfg}
}

// GetPrice fetches a freshness-checked price. Returns ErrUnknownSymbol,
// ErrZeroPrice or ErrStalePrice instead of substituting a default.
func (s *service) GetPrice(ctx context.Context, symbol string, nowMs int64) (core.Price, error) {
	var view priceView

	url := s.cfg.EndPoint + "/prices/" + symbol
	status, err := resthttp.Execute(resthttp.Request(ctx), "GET", url, nil, &view)
	if status == http.StatusNotFound {
		return core.Price{}, core.ErrUnknownSymbol
	}
	if err != nil {
		return core.Price{}, err
	}

	if view.Price.LessThanOrEqual(decimal.Zero) {
		return core.Price{}, core.ErrZeroPrice
	}

	if s.cfg.FreshnessMs > 0 && nowMs-view.ObservedAtMs > s.cfg.FreshnessMs {
		return core.Price{}, core.ErrStalePrice
	}

	return core.Price{
		Symbol:       symbol,
		PriceScaled:  view.Price,
		ObservedAtMs: view.ObservedAtMs,
	}, nil
}
