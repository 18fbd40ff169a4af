package core

import (
	"context"
	"time"

	"lend/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// AssetConfig per-asset risk and rate configuration
type AssetConfig struct {
	ID           uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol       string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	IsCollateral bool   `json:"is_collateral"`
	IsBorrowable bool   `json:"is_borrowable"`
	// 资产保留金率，0 时回退到全局保留金率
	ReserveFactorBps int64 `sql:"default:0" json:"reserve_factor_bps"`
	// 抵押率 = 可借贷价值 / 抵押资产价值
	LoanToValueBps int64 `sql:"default:0" json:"loan_to_value_bps"`
	// 触发清算的资产负债率，必须不小于抵押率
	LiquidationThresholdBps int64 `sql:"default:0" json:"liquidation_threshold_bps"`
	// 清算奖励率
	LiquidationPenaltyBps int64 `sql:"default:0" json:"liquidation_penalty_bps"`
	// interest curve, annual rates
	BaseRateBps        int64 `sql:"default:0" json:"base_rate_bps"`
	SlopeBelowKinkBps  int64 `sql:"default:0" json:"slope_below_kink_bps"`
	KinkUtilizationBps int64 `sql:"default:0" json:"kink_utilization_bps"`
	SlopeAboveKinkBps  int64 `sql:"default:0" json:"slope_above_kink_bps"`
	// caps in native units, zero means unlimited
	TotalSupplyCap decimal.Decimal `sql:"type:decimal(20,8);default:0" json:"total_supply_cap"`
	TotalBorrowCap decimal.Decimal `sql:"type:decimal(20,8);default:0" json:"total_borrow_cap"`
	PerTxSupplyCap decimal.Decimal `sql:"type:decimal(20,8);default:0" json:"per_tx_supply_cap"`
	PerTxBorrowCap decimal.Decimal `sql:"type:decimal(20,8);default:0" json:"per_tx_borrow_cap"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AssetCaps supply/borrow caps, zero means unlimited
type AssetCaps struct {
	TotalSupplyCap decimal.Decimal `json:"total_supply_cap"`
	TotalBorrowCap decimal.Decimal `json:"total_borrow_cap"`
	PerTxSupplyCap decimal.Decimal `json:"per_tx_supply_cap"`
	PerTxBorrowCap decimal.Decimal `json:"per_tx_borrow_cap"`
}

// LoanToValue ltv as a factor
func (c *AssetConfig) LoanToValue() decimal.Decimal {
	return number.Bps(c.LoanToValueBps)
}

// LiquidationThreshold liquidation threshold as a factor
func (c *AssetConfig) LiquidationThreshold() decimal.Decimal {
	return number.Bps(c.LiquidationThresholdBps)
}

// LiquidationPenalty liquidation penalty as a factor
func (c *AssetConfig) LiquidationPenalty() decimal.Decimal {
	return number.Bps(c.LiquidationPenaltyBps)
}

// ReserveFactor reserve factor as a factor, global value as fallback
func (c *AssetConfig) ReserveFactor(globalBps int64) decimal.Decimal {
	if c.ReserveFactorBps > 0 {
		return number.Bps(c.ReserveFactorBps)
	}

	return number.Bps(globalBps)
}

// BaseRate annual base rate as a factor
func (c *AssetConfig) BaseRate() decimal.Decimal {
	return number.Bps(c.BaseRateBps)
}

// SlopeBelowKink annual slope below the kink as a factor
func (c *AssetConfig) SlopeBelowKink() decimal.Decimal {
	return number.Bps(c.SlopeBelowKinkBps)
}

// SlopeAboveKink annual slope above the kink as a factor
func (c *AssetConfig) SlopeAboveKink() decimal.Decimal {
	return number.Bps(c.SlopeAboveKinkBps)
}

// KinkUtilization kink utilization point as a factor
func (c *AssetConfig) KinkUtilization() decimal.Decimal {
	return number.Bps(c.KinkUtilizationBps)
}

// IAssetStore asset config store interface
type IAssetStore interface {
	Save(ctx context.Context, tx *db.DB, asset *AssetConfig) error
	Find(ctx context.Context, symbol string) (*AssetConfig, error)
	All(ctx context.Context) ([]*AssetConfig, error)
	AllAsMap(ctx context.Context) (map[string]*AssetConfig, error)
	Update(ctx context.Context, tx *db.DB, asset *AssetConfig) error
}

// GlobalParams ledger-wide parameters, kept in the property store
type GlobalParams struct {
	ReserveFactorGlobalBps int64 `json:"reserve_factor_global_bps"`
	AccrualGranularityMs   int64 `json:"accrual_granularity_ms"`
	PenaltySplitBps        int64 `json:"penalty_split_bps"`
	EpochLengthMs          int64 `json:"epoch_length_ms"`
	GenesisMs              int64 `json:"genesis_ms"`
}

// IRegistryService admin-gated configuration mutators
type IRegistryService interface {
	AddAsset(ctx context.Context, auth *AuthContext, asset *AssetConfig) error
	SetCaps(ctx context.Context, auth *AuthContext, symbol string, caps AssetCaps) error
	SetRiskParams(ctx context.Context, auth *AuthContext, symbol string, ltvBps, liqThresholdBps, penaltyBps int64) error
	SetGlobalParams(ctx context.Context, auth *AuthContext, params GlobalParams) error
	SetPaused(ctx context.Context, auth *AuthContext, paused bool) error
	IsPaused(ctx context.Context) (bool, error)
	GlobalParams(ctx context.Context) (*GlobalParams, error)
}
