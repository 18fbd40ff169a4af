package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUtilizationRate(t *testing.T) {
	assert.True(t, UtilizationRate(decimal.Zero, decimal.Zero).IsZero())
	assert.True(t, UtilizationRate(decimal.NewFromInt(100), decimal.Zero).IsZero())

	u := UtilizationRate(decimal.NewFromInt(50), decimal.NewFromInt(50))
	assert.Equal(t, "0.5", u.String())

	u = UtilizationRate(decimal.NewFromInt(10), decimal.NewFromInt(90))
	assert.Equal(t, "0.9", u.String())
}

func TestGetBorrowRatePerSecond(t *testing.T) {
	base := decimal.RequireFromString("0.02")
	slopeBelow := decimal.RequireFromString("0.1")
	slopeAbove := decimal.RequireFromString("3")
	kink := decimal.RequireFromString("0.8")

	atZero := GetBorrowRatePerSecond(decimal.Zero, base, slopeBelow, slopeAbove, kink)
	assert.True(t, atZero.Equal(GetBaseRatePerSecond(base)))

	atKink := GetBorrowRatePerSecond(kink, base, slopeBelow, slopeAbove, kink)
	aboveKink := GetBorrowRatePerSecond(decimal.RequireFromString("0.9"), base, slopeBelow, slopeAbove, kink)

	assert.True(t, atKink.GreaterThan(atZero))
	assert.True(t, aboveKink.GreaterThan(atKink))

	// jump slope applies only to the excess utilization
	want := atKink.Add(decimal.RequireFromString("0.1").Mul(GetSlopePerSecond(slopeAbove))).Truncate(MaxPricision)
	assert.True(t, aboveKink.Equal(want))
}

func TestGetSupplyRatePerSecond(t *testing.T) {
	base := decimal.RequireFromString("0.02")
	slopeBelow := decimal.RequireFromString("0.1")
	slopeAbove := decimal.RequireFromString("3")
	kink := decimal.RequireFromString("0.8")
	reserveFactor := decimal.RequireFromString("0.1")

	u := decimal.RequireFromString("0.5")
	borrowRate := GetBorrowRatePerSecond(u, base, slopeBelow, slopeAbove, kink)
	supplyRate := GetSupplyRatePerSecond(u, base, slopeBelow, slopeAbove, kink, reserveFactor)

	// suppliers earn the borrow rate scaled by utilization net of reserves
	assert.True(t, supplyRate.LessThan(borrowRate))
	assert.True(t, supplyRate.GreaterThan(decimal.Zero))
}

func TestCurrentEpoch(t *testing.T) {
	epoch, err := CurrentEpoch(1700000000000, 1600000000000, 86400000)
	if err != nil {
		t.Error(err)
	}
	assert.Equal(t, int64(1157), epoch)

	_, err = CurrentEpoch(100, 200, 86400000)
	assert.NotNil(t, err)

	_, err = CurrentEpoch(100, 0, 0)
	assert.NotNil(t, err)
}
