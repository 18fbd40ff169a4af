package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScaledRoundTrip(t *testing.T) {
	indices := []string{"1", "1.0000001", "1.5", "2.3333333333333333", "7.1234567890123456"}
	units := []string{"0", "1", "0.00000001", "10000", "12345.67891234", "99999999.99999999"}

	for _, i := range indices {
		index, _ := decimal.NewFromString(i)
		for _, u := range units {
			unit, _ := decimal.NewFromString(u)

			scaled := ScaledFromUnits(unit, index)
			back := UnitsFromScaled(scaled, index)

			// floor rounding never overstates a balance
			assert.True(t, back.LessThanOrEqual(unit), "index=%s units=%s back=%s", i, u, back)
			// and loses at most one unit of the last amount digit
			assert.True(t, unit.Sub(back).LessThanOrEqual(decimal.New(1, -AmountPricision)), "index=%s units=%s back=%s", i, u, back)
		}
	}
}

func TestScaledMonotonicOverIndices(t *testing.T) {
	unit := decimal.RequireFromString("123.45678901")
	index1 := decimal.RequireFromString("1.2")
	index2 := decimal.RequireFromString("1.35")

	scaled := ScaledFromUnits(unit, index1)
	assert.True(t, UnitsFromScaled(scaled, index2).GreaterThanOrEqual(UnitsFromScaled(scaled, index1)))
}

func TestGrowIndex(t *testing.T) {
	index := decimal.NewFromInt(1)
	rate := decimal.RequireFromString("0.000000001")
	dt := decimal.NewFromInt(3600)

	grown := GrowIndex(index, rate, dt)
	assert.Equal(t, "1.0000036", grown.String())

	// zero dt keeps the index
	assert.True(t, GrowIndex(index, rate, decimal.Zero).Equal(index))
	// zero rate keeps the index
	assert.True(t, GrowIndex(grown, decimal.Zero, dt).Equal(grown))
}
