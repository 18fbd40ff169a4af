package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrNotAdmin caller is not a registered administrator
	ErrNotAdmin ErrorCode = 100001
	// ErrPaused ledger is paused
	ErrPaused ErrorCode = 100002
	// ErrZeroAmount zero or negative amount
	ErrZeroAmount ErrorCode = 100003

	// ErrAssetNotFound no asset registered for the symbol
	ErrAssetNotFound ErrorCode = 100100
	// ErrDuplicateAsset asset symbol already registered
	ErrDuplicateAsset ErrorCode = 100101
	// ErrInvalidRiskParams liquidation threshold below ltv or above 100%
	ErrInvalidRiskParams ErrorCode = 100102
	// ErrCapExceeded per-tx or total cap exceeded
	ErrCapExceeded ErrorCode = 100103
	// ErrNotBorrowable asset is not borrowable
	ErrNotBorrowable ErrorCode = 100104
	// ErrNotCollateral asset is not accepted as collateral
	ErrNotCollateral ErrorCode = 100105
	// ErrInsufficientLiquidity pool cash can not cover the debit
	ErrInsufficientLiquidity ErrorCode = 100106
	// ErrInsufficientBalance account balance can not cover the debit
	ErrInsufficientBalance ErrorCode = 100107
	// ErrRepayExceedsDebt repay amount exceeds the outstanding debt
	ErrRepayExceedsDebt ErrorCode = 100108
	// ErrLtvViolation aggregate borrow value would exceed the borrow limit
	ErrLtvViolation ErrorCode = 100109
	// ErrPositionHealthy position is above the liquidation threshold
	ErrPositionHealthy ErrorCode = 100110
	// ErrExceedsReserves skim amount exceeds accumulated reserves
	ErrExceedsReserves ErrorCode = 100111
	// ErrFlashLoanUnderpaid flash loan repaid below principal plus fee
	ErrFlashLoanUnderpaid ErrorCode = 100112

	// ErrOracle oracle failure, wraps one of the variants below
	ErrOracle ErrorCode = 100200
	// ErrStalePrice oracle price too old
	ErrStalePrice ErrorCode = 100201
	// ErrUnknownSymbol oracle does not know the symbol
	ErrUnknownSymbol ErrorCode = 100202
	// ErrZeroPrice oracle returned a zero or negative price
	ErrZeroPrice ErrorCode = 100203
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
