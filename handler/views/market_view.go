package views

import (
	"github.com/shopspring/decimal"
)

// Market market view
type Market struct {
	Symbol          string          `json:"symbol"`
	Cash            decimal.Decimal `json:"cash"`
	TotalSupply     decimal.Decimal `json:"total_supply"`
	TotalBorrows    decimal.Decimal `json:"total_borrows"`
	Reserves        decimal.Decimal `json:"reserves"`
	SupplyIndex     decimal.Decimal `json:"supply_index"`
	BorrowIndex     decimal.Decimal `json:"borrow_index"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	BorrowRate      decimal.Decimal `json:"borrow_rate"`
	SupplyRate      decimal.Decimal `json:"supply_rate"`
	BorrowAPY       decimal.Decimal `json:"borrow_apy"`
	SupplyAPY       decimal.Decimal `json:"supply_apy"`
	IsCollateral    bool            `json:"is_collateral"`
	IsBorrowable    bool            `json:"is_borrowable"`
	LoanToValueBps  int64           `json:"loan_to_value_bps"`
	LiqThresholdBps int64           `json:"liquidation_threshold_bps"`
	LiqPenaltyBps   int64           `json:"liquidation_penalty_bps"`
}
