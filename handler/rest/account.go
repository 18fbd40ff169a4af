package rest

import (
	"net/http"
	"time"

	"lend/core"
	"lend/handler/render"
	"lend/handler/views"
	"lend/internal/ledger"

	"github.com/go-chi/chi"
)

func accountHandler(accountStore core.IAccountStore, poolStore core.IPoolStore, accountz core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "user")

		positions, err := accountStore.FindByUser(ctx, userID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		pools, err := poolStore.AllAsMap(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view := &views.Account{
			UserID:    userID,
			Positions: make([]*views.Position, 0, len(positions)),
		}

		for _, p := range positions {
			pool, ok := pools[p.Symbol]
			if !ok {
				continue
			}

			view.Positions = append(view.Positions, &views.Position{
				Symbol:      p.Symbol,
				SupplyUnits: ledger.UnitsFromScaled(p.SupplyScaled, pool.SupplyIndex),
				BorrowUnits: ledger.UnitsFromScaled(p.BorrowScaled, pool.BorrowIndex),
			})
		}

		nowMs := time.Now().UnixMilli()
		if prices, err := accountz.BuildPriceSet(ctx, userID, nil, nowMs); err == nil {
			if portfolio, err := accountz.Portfolio(ctx, userID, prices); err == nil {
				view.SupplyValue = portfolio.SupplyValue
				view.BorrowValue = portfolio.BorrowValue
				view.BorrowLimit = portfolio.BorrowLimit
				view.LiquidationLimit = portfolio.LiquidationLimit
				view.Liquidatable = portfolio.IsLiquidatable()
			}
		}

		render.JSON(w, view)
	}
}
