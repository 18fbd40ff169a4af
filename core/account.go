package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position per-user per-asset scaled balances, created lazily on first use
type Position struct {
	ID           uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID       string          `sql:"size:36;unique_index:user_symbol_idx" json:"user_id"`
	Symbol       string          `sql:"size:20;unique_index:user_symbol_idx" json:"symbol"`
	SupplyScaled decimal.Decimal `sql:"type:decimal(32,16)" json:"supply_scaled"`
	BorrowScaled decimal.Decimal `sql:"type:decimal(32,16)" json:"borrow_scaled"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Account 借贷账户
type Account struct {
	UserID    string      `json:"user_id"`
	Positions []*Position `json:"positions"`
}

// Portfolio account values in the common quote unit
type Portfolio struct {
	// deposits weighted by price only
	SupplyValue decimal.Decimal `json:"supply_value"`
	// collateral deposits weighted by price and ltv
	BorrowLimit decimal.Decimal `json:"borrow_limit"`
	// collateral deposits weighted by price and liquidation threshold
	LiquidationLimit decimal.Decimal `json:"liquidation_limit"`
	// borrows weighted by price
	BorrowValue decimal.Decimal `json:"borrow_value"`
}

// IsLiquidatable borrow value above the threshold-weighted collateral value
func (p *Portfolio) IsLiquidatable() bool {
	return p.BorrowValue.GreaterThan(p.LiquidationLimit)
}

// WithinBorrowLimit borrow value within the ltv-weighted collateral value
func (p *Portfolio) WithinBorrowLimit() bool {
	return p.BorrowValue.LessThanOrEqual(p.BorrowLimit)
}

// IAccountStore position store interface
type IAccountStore interface {
	Save(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, userID, symbol string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error
}

// IAccountService account risk interface
type IAccountService interface {
	// BuildPriceSet queries the oracle once per symbol the account touches,
	// plus the extra symbols the caller is about to touch.
	BuildPriceSet(ctx context.Context, userID string, extraSymbols []string, nowMs int64) (PriceSet, error)
	// Portfolio values the account with the given price snapshot.
	Portfolio(ctx context.Context, userID string, prices PriceSet) (*Portfolio, error)
}
