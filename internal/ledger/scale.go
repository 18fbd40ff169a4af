package ledger

import (
	"github.com/shopspring/decimal"
)

// One unit value of an interest index.
var One = decimal.NewFromInt(1)

// UnitsFromScaled converts a scaled balance into native units at the given
// index. Truncates in the pool's favor.
func UnitsFromScaled(scaled, index decimal.Decimal) decimal.Decimal {
	return scaled.Mul(index).Truncate(AmountPricision)
}

// ScaledFromUnits converts native units into a scaled balance at the given
// index. Truncates in the pool's favor; a scaled→units→scaled round trip may
// lose up to one unit of the last digit.
func ScaledFromUnits(units, index decimal.Decimal) decimal.Decimal {
	q, _ := units.QuoRem(index, MaxPricision)
	return q
}

// GrowIndex compounds an index by rate over dt seconds.
//
// index' = index * (1 + rate*dt)
func GrowIndex(index, rate, dt decimal.Decimal) decimal.Decimal {
	return index.Mul(One.Add(rate.Mul(dt))).Truncate(MaxPricision)
}
