package rest

import (
	"net/http"

	"lend/core"
	"lend/handler/param"
	"lend/handler/render"

	"github.com/shopspring/decimal"
)

type opRequest struct {
	UserID string          `json:"user_id"`
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
}

func supplyHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params opRequest
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := ledgerz.Supply(r.Context(), params.UserID, params.Symbol, params.Amount); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func withdrawHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params opRequest
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := ledgerz.Withdraw(r.Context(), params.UserID, params.Symbol, params.Amount); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func borrowHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params opRequest
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := ledgerz.Borrow(r.Context(), params.UserID, params.Symbol, params.Amount); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func repayHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params opRequest
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := ledgerz.Repay(r.Context(), params.UserID, params.Symbol, params.Amount); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func liquidateHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			LiquidatorID     string          `json:"liquidator_id"`
			BorrowerID       string          `json:"borrower_id"`
			DebtSymbol       string          `json:"debt_symbol"`
			CollateralSymbol string          `json:"collateral_symbol"`
			Payment          decimal.Decimal `json:"payment"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		result, err := ledgerz.Liquidate(r.Context(), params.LiquidatorID, params.BorrowerID, params.DebtSymbol, params.CollateralSymbol, params.Payment)
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, result)
	}
}

// flashLoanHandler runs both legs back to back: the host call model
// guarantees atomicity, an underpaid repay fails the whole request.
func flashLoanHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol      string          `json:"symbol"`
			Amount      decimal.Decimal `json:"amount"`
			RepayAmount decimal.Decimal `json:"repay_amount"`
			FeeBps      int64           `json:"fee_bps"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		loan, err := ledgerz.InitiateFlashLoan(r.Context(), params.Symbol, params.Amount)
		if err != nil {
			render.OpError(w, err)
			return
		}

		if err := ledgerz.RepayFlashLoan(r.Context(), loan, params.RepayAmount, params.FeeBps); err != nil {
			// unwind the principal, the outer call has no host transaction
			_ = ledgerz.RepayFlashLoan(r.Context(), loan, loan.Amount, 0)
			render.OpError(w, err)
			return
		}

		render.JSON(w, loan)
	}
}
