package ledger

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// LtvMax max of loan-to-value factor
	LtvMax = decimal.NewFromFloat(1)
	// LiquidationPenaltyMin must be no less than this value
	LiquidationPenaltyMin = decimal.NewFromFloat(0)
	// LiquidationPenaltyMax must be no greater than this value
	LiquidationPenaltyMax = decimal.NewFromFloat(0.9)
	// MaxPricision max pricision
	MaxPricision int32 = 16
	// AmountPricision pricision of native asset amounts
	AmountPricision int32 = 8
)

// UtilizationRate utilization rate
// utilization_rate = pool.total_borrows/(pool.cash + pool.total_borrows)
func UtilizationRate(cash, borrows decimal.Decimal) decimal.Decimal {
	total := cash.Add(borrows)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	q, _ := borrows.QuoRem(total, MaxPricision)
	return q
}

// GetBorrowRatePerSecond borrow rate per second from the kinked curve.
// base, slopeBelow and slopeAbove are annual rates, kink is a utilization point.
//
// rate = base + slopeBelow * min(u, kink) + slopeAbove * max(0, u - kink)
func GetBorrowRatePerSecond(utilizationRate, baseRate, slopeBelow, slopeAbove, kink decimal.Decimal) decimal.Decimal {
	u := utilizationRate
	if kink.GreaterThan(decimal.Zero) && u.GreaterThan(kink) {
		// the curve stays continuous at the kink: the jump slope adds on
		// top of the rate the below-kink branch yields at exactly kink
		rateAtKink := kink.Mul(GetSlopePerSecond(slopeBelow)).Add(GetBaseRatePerSecond(baseRate)).Truncate(MaxPricision)
		excessUtilRate := u.Sub(kink)
		return excessUtilRate.Mul(GetSlopePerSecond(slopeAbove)).Add(rateAtKink).Truncate(MaxPricision)
	}

	return u.Mul(GetSlopePerSecond(slopeBelow)).Add(GetBaseRatePerSecond(baseRate)).Truncate(MaxPricision)
}

// GetSupplyRatePerSecond supply rate per second
func GetSupplyRatePerSecond(utilizationRate, baseRate, slopeBelow, slopeAbove, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerSecond(utilizationRate, baseRate, slopeBelow, slopeAbove, kink)
	oneMinusReserveFactor := decimal.NewFromInt(1).Sub(reserveFactor)
	rateToPool := borrowRate.Mul(oneMinusReserveFactor)
	return utilizationRate.Mul(rateToPool).Truncate(MaxPricision)
}

// GetBaseRatePerSecond base rate per second
func GetBaseRatePerSecond(baseRate decimal.Decimal) decimal.Decimal {
	q, _ := baseRate.QuoRem(SecondsPerYear, MaxPricision)
	return q
}

// GetSlopePerSecond annual slope per second
func GetSlopePerSecond(slope decimal.Decimal) decimal.Decimal {
	q, _ := slope.QuoRem(SecondsPerYear, MaxPricision)
	return q
}
