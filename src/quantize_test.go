package scm

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s", expected, actual)
}

func TestQuantizationSteps(t *testing.T) {
	assertDecimalEqual(t, "0.02", batteryStepV1())
	assertDecimalEqual(t, "0.02", batteryStepV2())

	assertDecimalEqual(t, "1.5", tempMinStepV1())
	assertDecimalEqual(t, "1.5", tempMaxStepV1())
	assertDecimalEqual(t, "0.75", tempMinStepV2())
	assertDecimalEqual(t, "0.75", tempMaxStepV2())

	assertDecimalEqual(t, "7.8125", pointDeltaMStepV1())
	assertDecimalEqual(t, "7.8125", pointDeltaMStepV2())

	assertDecimalEqual(t, "0.17578125", pointBearingStepV1())
	assertDecimalEqual(t, "0.17578125", pointBearingStepV2())
}

// Wire precision follows the step: as many decimal places as the
// step itself carries.
func TestStepPlaces(t *testing.T) {
	assert.Equal(t, int32(2), batteryPlaces())
	assert.Equal(t, int32(1), tempPlacesV1())
	assert.Equal(t, int32(2), tempPlacesV2())
	assert.Equal(t, int32(4), pointDeltaMPlaces())
	assert.Equal(t, int32(8), pointBearingPlaces())

	assert.Equal(t, int32(0), decimalPlaces(decimal.NewFromInt(42)))
}

func TestDequantizeEndpoints(t *testing.T) {
	assertDecimalEqual(t, "3.00", dequantize(0, batteryStepV1(), BatteryRangeLow))
	assertDecimalEqual(t, "4.26", dequantize(63, batteryStepV1(), BatteryRangeLow))

	assertDecimalEqual(t, "20", dequantize(0, tempMaxStepV1(), TempMaxRangeLow))
	assertDecimalEqual(t, "42.5", dequantize(15, tempMaxStepV1(), TempMaxRangeLow))
}

// Dequantization is exactly linear: one more count is exactly one
// more step, in decimal, with no accumulation error.
func TestDequantizeLinearityProperty(t *testing.T) {
	var steps = map[string]decimal.Decimal{
		"battery":  batteryStepV1(),
		"temp_min": tempMinStepV2(),
		"delta_m":  pointDeltaMStepV1(),
		"bearing":  pointBearingStepV2(),
	}

	rapid.Check(t, func(t *rapid.T) {
		var count = rapid.Uint32Range(0, 1<<24).Draw(t, "count")

		for name, step := range steps {
			var lo = dequantize(count, step, "0")
			var hi = dequantize(count+1, step, "0")
			assert.True(t, hi.Sub(lo).Equal(step), "%s step not linear at %d", name, count)
		}
	})
}
