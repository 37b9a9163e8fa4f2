package nlg

import (
	"math"

	"github.com/shopspring/decimal"
)

// growthEpsilon keeps the denominator non-zero when the old value is 0.
const growthEpsilon = 1e-8

// maxDisplayGrowth caps the {growth} variable shown in sentences.
var maxDisplayGrowth = decimal.NewFromInt(200)

// Growth returns the percentage change from oldValue to newValue, rounded
// half away from zero to precision decimal places.
func Growth(oldValue, newValue float64, precision int) (float64, error) {
	if err := checkFinite("old value", oldValue); err != nil {
		return 0, err
	}
	if err := checkFinite("new value", newValue); err != nil {
		return 0, err
	}
	if precision < 0 {
		return 0, invalidInput("precision must not be negative, got %d", precision)
	}

	ratio := (newValue - oldValue) / (oldValue + growthEpsilon) * 100
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, invalidInput("growth from %v to %v is not finite", oldValue, newValue)
	}

	growth, _ := decimal.NewFromFloat(ratio).Round(int32(precision)).Float64()
	return growth, nil
}

// FormatGrowth renders |growth| capped at 200 with a "%" suffix, in its
// shortest decimal form ("100%", "12.5%").
func FormatGrowth(growth float64) string {
	d := decimal.NewFromFloat(growth).Abs()
	if d.GreaterThan(maxDisplayGrowth) {
		d = maxDisplayGrowth
	}
	return d.String() + "%"
}
