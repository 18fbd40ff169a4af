package number

import (
	"math"

	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Sqrt(d decimal.Decimal) decimal.Decimal {
	f, _ := d.Float64()
	f = math.Sqrt(f)
	return decimal.NewFromFloat(f)
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// FloorDiv divides a by b truncating the quotient at precision digits.
// QuoRem keeps the division exact, so the result never rounds up.
func FloorDiv(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, _ := a.QuoRem(b, precision)
	return q
}

// CeilDiv divides a by b rounding the quotient up at precision digits.
func CeilDiv(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, r := a.QuoRem(b, precision)
	if !r.IsZero() {
		q = q.Add(decimal.New(1, -precision))
	}
	return q
}

// FloorMul multiplies a by b truncating at precision digits.
func FloorMul(a, b decimal.Decimal, precision int32) decimal.Decimal {
	return a.Mul(b).Truncate(precision)
}

// Bps converts a basis-point value into a decimal factor.
func Bps(bps int64) decimal.Decimal {
	return decimal.New(bps, -4)
}
