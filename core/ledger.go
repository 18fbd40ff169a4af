package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// FlashLoan an outstanding same-transaction loan. The host call model
// guarantees the repay leg runs in the same atomic call or the whole
// operation unwinds.
type FlashLoan struct {
	TraceID     string          `json:"trace_id"`
	Symbol      string          `json:"symbol"`
	Amount      decimal.Decimal `json:"amount"`
	StartedAtMs int64           `json:"started_at_ms"`
}

// LiquidationResult outcome of a liquidate call
type LiquidationResult struct {
	Payment           decimal.Decimal `json:"payment"`
	SeizedUnits       decimal.Decimal `json:"seized_units"`
	LiquidatorCut     decimal.Decimal `json:"liquidator_cut"`
	PenaltyToTreasury decimal.Decimal `json:"penalty_to_treasury"`
}

// ILedgerService the ledger's own operation surface. Every operation
// accrues interest on the touched pool first, applies the mutation, runs
// the risk check where required and persists atomically. Operations on
// the same pool are serialized, operations on different pools may run in
// parallel.
type ILedgerService interface {
	Supply(ctx context.Context, userID, symbol string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, userID, symbol string, amount decimal.Decimal) error
	Borrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) error
	Repay(ctx context.Context, userID, symbol string, amount decimal.Decimal) error
	Liquidate(ctx context.Context, liquidatorID, borrowerID, debtSymbol, collateralSymbol string, payment decimal.Decimal) (*LiquidationResult, error)
	InitiateFlashLoan(ctx context.Context, symbol string, amount decimal.Decimal) (*FlashLoan, error)
	RepayFlashLoan(ctx context.Context, loan *FlashLoan, repayAmount decimal.Decimal, feeBps int64) error
	SkimReserves(ctx context.Context, auth *AuthContext, symbol string, amount decimal.Decimal) error
	// UpdateRates accrues the pool without any balance mutation.
	UpdateRates(ctx context.Context, symbol string) error
}
