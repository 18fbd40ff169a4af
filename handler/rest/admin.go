package rest

import (
	"net/http"

	"lend/core"
	"lend/handler/param"
	"lend/handler/render"

	"github.com/shopspring/decimal"
)

func addAssetHandler(registryz core.IRegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var asset core.AssetConfig
		if err := param.Binding(r, &asset); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := registryz.AddAsset(r.Context(), authFromRequest(r), &asset); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, asset)
	}
}

func setCapsHandler(registryz core.IRegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string `json:"symbol"`
			core.AssetCaps
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := registryz.SetCaps(r.Context(), authFromRequest(r), params.Symbol, params.AssetCaps); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func setRiskParamsHandler(registryz core.IRegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol                  string `json:"symbol"`
			LoanToValueBps          int64  `json:"loan_to_value_bps"`
			LiquidationThresholdBps int64  `json:"liquidation_threshold_bps"`
			LiquidationPenaltyBps   int64  `json:"liquidation_penalty_bps"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		err := registryz.SetRiskParams(r.Context(), authFromRequest(r), params.Symbol, params.LoanToValueBps, params.LiquidationThresholdBps, params.LiquidationPenaltyBps)
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func setGlobalParamsHandler(registryz core.IRegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params core.GlobalParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := registryz.SetGlobalParams(r.Context(), authFromRequest(r), params); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func setPausedHandler(registryz core.IRegistryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Paused bool `json:"paused"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := registryz.SetPaused(r.Context(), authFromRequest(r), params.Paused); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func skimHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string          `json:"symbol"`
			Amount decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := ledgerz.SkimReserves(r.Context(), authFromRequest(r), params.Symbol, params.Amount); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}
