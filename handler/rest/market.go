package rest

import (
	"context"
	"net/http"

	"lend/core"
	"lend/handler/render"
	"lend/handler/views"
	"lend/internal/ledger"

	"github.com/go-chi/chi"
)

func allMarketsHandler(assetStore core.IAssetStore, poolStore core.IPoolStore, poolz core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		assets, err := assetStore.AllAsMap(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		pools, err := poolStore.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(pools))
		for _, pool := range pools {
			asset, ok := assets[pool.Symbol]
			if !ok {
				continue
			}

			marketViews = append(marketViews, marketView(ctx, asset, pool, poolz))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(assetStore core.IAssetStore, poolStore core.IPoolStore, poolz core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		symbol := chi.URLParam(r, "symbol")

		asset, err := assetStore.Find(ctx, symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if asset.ID == 0 {
			render.NotFoundRequest(w, core.ErrAssetNotFound)
			return
		}

		pool, err := poolStore.Find(ctx, symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if pool.ID == 0 {
			render.NotFoundRequest(w, core.ErrAssetNotFound)
			return
		}

		render.JSON(w, marketView(ctx, asset, pool, poolz))
	}
}

func marketView(ctx context.Context, asset *core.AssetConfig, pool *core.Pool, poolz core.IPoolService) *views.Market {
	borrowRate := poolz.CurBorrowRatePerSecond(ctx, pool, asset)
	supplyRate := poolz.CurSupplyRatePerSecond(ctx, pool, asset)

	return &views.Market{
		Symbol:          pool.Symbol,
		Cash:            pool.Cash,
		TotalSupply:     pool.TotalSupplyUnits(),
		TotalBorrows:    pool.TotalBorrowUnits(),
		Reserves:        pool.Reserves,
		SupplyIndex:     pool.SupplyIndex,
		BorrowIndex:     pool.BorrowIndex,
		UtilizationRate: poolz.CurUtilizationRate(ctx, pool),
		BorrowRate:      borrowRate,
		SupplyRate:      supplyRate,
		BorrowAPY:       borrowRate.Mul(ledger.SecondsPerYear),
		SupplyAPY:       supplyRate.Mul(ledger.SecondsPerYear),
		IsCollateral:    asset.IsCollateral,
		IsBorrowable:    asset.IsBorrowable,
		LoanToValueBps:  asset.LoanToValueBps,
		LiqThresholdBps: asset.LiquidationThresholdBps,
		LiqPenaltyBps:   asset.LiquidationPenaltyBps,
	}
}
