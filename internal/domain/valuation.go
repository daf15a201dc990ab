package domain

import "math"

// DepreciationBaseValue is the fixed base the valuation compounds against.
// It is deliberately not derived from the asset's own approx_value; the
// discrepancy is a known quirk of the system and is preserved as-is.
const DepreciationBaseValue = 1000.0

// DepreciatedValue compounds a yearly depreciation rate (expressed as a
// percentage) over the elapsed year count. No bounds are enforced on the
// rate; negative or >100% rates flow through the formula unchanged.
func DepreciatedValue(ratePercent float64, years uint64) float64 {
	return DepreciationBaseValue * math.Pow(1-ratePercent/100, float64(years))
}
