package nbc

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds v to the given number of decimal places, halves away from
// zero, the way values are reported in code tables. NaN and infinities are
// returned unchanged.
func Round(v float64, places int32) float64 {
	if !Finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
