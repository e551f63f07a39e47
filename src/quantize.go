package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Dequantization of packed sensor counts.
 *
 *		Each quantized field maps count -> low + count*step,
 *		where step = (high - low) / 2^width.  The arithmetic
 *		is exact decimal; the collar firmware quantizes in
 *		decimal and binary floating point would drift on
 *		values like 0.02 volts.
 *
 *		Steps are computed once on first use from the range
 *		and width constants.  Concurrent first use is safe,
 *		sync.OnceValue does the fencing.
 *
 *--------------------------------------------------------------*/

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

func quantizationStep(low, high string, width int) func() decimal.Decimal {
	return sync.OnceValue(func() decimal.Decimal {
		var lo = decimal.RequireFromString(low)
		var hi = decimal.RequireFromString(high)
		return hi.Sub(lo).Div(decimal.NewFromInt(int64(1) << width))
	})
}

var batteryStepV1 = quantizationStep(BatteryRangeLow, BatteryRangeHigh, TrackingV1BatterySize)
var batteryStepV2 = quantizationStep(BatteryRangeLow, BatteryRangeHigh, TrackingV2BatterySize)

var tempMinStepV1 = quantizationStep(TempMinRangeLow, TempMinRangeHigh, TrackingV1TempMinSize)
var tempMinStepV2 = quantizationStep(TempMinRangeLow, TempMinRangeHigh, TrackingV2TempMinSize)

var tempMaxStepV1 = quantizationStep(TempMaxRangeLow, TempMaxRangeHigh, TrackingV1TempMaxSize)
var tempMaxStepV2 = quantizationStep(TempMaxRangeLow, TempMaxRangeHigh, TrackingV2TempMaxSize)

var pointDeltaMStepV1 = quantizationStep("0", PointDeltaMRange, PointV1DeltaMSize)
var pointDeltaMStepV2 = quantizationStep("0", PointDeltaMRange, PointV2DeltaMSize)

var pointBearingStepV1 = quantizationStep("0", PointDeltaFullCircle, PointV1DeltaAngleSize)
var pointBearingStepV2 = quantizationStep("0", PointDeltaFullCircle, PointV2DeltaAngleSize)

// dequantize maps a packed count back to its physical value.
func dequantize(count uint32, step decimal.Decimal, low string) decimal.Decimal {
	return decimal.NewFromInt(int64(count)).Mul(step).Add(decimal.RequireFromString(low))
}

// decimalPlaces reports how many digits d carries after the decimal
// point once trailing zeros are dropped.
func decimalPlaces(d decimal.Decimal) int32 {
	var s = d.String()
	var dot = strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return int32(len(s) - dot - 1)
}

// Serialized dequantized values carry exactly as many decimal places
// as their quantization step, so a reading never looks more or less
// precise than the packed count resolves.  Battery and the point
// fields share widths between v1 and v2; the temperatures do not.
var batteryPlaces = sync.OnceValue(func() int32 { return decimalPlaces(batteryStepV1()) })
var tempPlacesV1 = sync.OnceValue(func() int32 { return decimalPlaces(tempMinStepV1()) })
var tempPlacesV2 = sync.OnceValue(func() int32 { return decimalPlaces(tempMinStepV2()) })
var pointDeltaMPlaces = sync.OnceValue(func() int32 { return decimalPlaces(pointDeltaMStepV1()) })
var pointBearingPlaces = sync.OnceValue(func() int32 { return decimalPlaces(pointBearingStepV1()) })
