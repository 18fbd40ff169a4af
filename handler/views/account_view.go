package views

import (
	"github.com/shopspring/decimal"
)

// Position position view
type Position struct {
	Symbol      string          `json:"symbol"`
	SupplyUnits decimal.Decimal `json:"supply_units"`
	BorrowUnits decimal.Decimal `json:"borrow_units"`
}

// Account account view with portfolio values
type Account struct {
	UserID           string          `json:"user_id"`
	Positions        []*Position     `json:"positions"`
	SupplyValue      decimal.Decimal `json:"supply_value"`
	BorrowValue      decimal.Decimal `json:"borrow_value"`
	BorrowLimit      decimal.Decimal `json:"borrow_limit"`
	LiquidationLimit decimal.Decimal `json:"liquidation_limit"`
	Liquidatable     bool            `json:"liquidatable"`
}
