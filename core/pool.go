package core

import (
	"context"
	"time"

	"lend/internal/ledger"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Pool per-asset accounting state
type Pool struct {
	ID     uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol string `sql:"size:20;unique_index:pool_symbol_idx" json:"symbol"`
	// liquidity available for withdrawal and borrow
	Cash decimal.Decimal `sql:"type:decimal(20,8)" json:"cash"`
	// 按 supply index 折算的总存款
	TotalSupplyScaled decimal.Decimal `sql:"type:decimal(32,16)" json:"total_supply_scaled"`
	// 按 borrow index 折算的总借款
	TotalBorrowScaled decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrow_scaled"`
	SupplyIndex       decimal.Decimal `sql:"type:decimal(32,16)" json:"supply_index"`
	BorrowIndex       decimal.Decimal `sql:"type:decimal(32,16)" json:"borrow_index"`
	Reserves          decimal.Decimal `sql:"type:decimal(20,8)" json:"reserves"`
	LastAccrualTsMs   int64           `sql:"default:0" json:"last_accrual_ts_ms"`
	Version           int64           `sql:"default:0" json:"version"`
	CreatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TotalSupplyUnits total deposits in native units at the current supply index
func (p *Pool) TotalSupplyUnits() decimal.Decimal {
	return ledger.UnitsFromScaled(p.TotalSupplyScaled, p.SupplyIndex)
}

// TotalBorrowUnits outstanding borrows in native units at the current borrow index
func (p *Pool) TotalBorrowUnits() decimal.Decimal {
	return ledger.UnitsFromScaled(p.TotalBorrowScaled, p.BorrowIndex)
}

// IPoolStore pool store interface
type IPoolStore interface {
	Save(ctx context.Context, tx *db.DB, pool *Pool) error
	Find(ctx context.Context, symbol string) (*Pool, error)
	All(ctx context.Context) ([]*Pool, error)
	AllAsMap(ctx context.Context) (map[string]*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}

// IPoolService pool accrual interface
type IPoolService interface {
	// Accrue moves the pool's indices up to nowMs. Must run before any
	// scaled conversion inside a mutating operation.
	Accrue(ctx context.Context, pool *Pool, asset *AssetConfig, nowMs int64) error
	CurUtilizationRate(ctx context.Context, pool *Pool) decimal.Decimal
	CurBorrowRatePerSecond(ctx context.Context, pool *Pool, asset *AssetConfig) decimal.Decimal
	CurSupplyRatePerSecond(ctx context.Context, pool *Pool, asset *AssetConfig) decimal.Decimal
}
