package earnings

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Money formats v with exactly two decimals, e.g. "1250.50".
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Average is total/count, or 0 when there is nothing to average.
func Average(total float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return total / float64(count)
}

func roundPercent(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}
