package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// ParseAmount parses a currency amount that may carry thousands
// separators (e.g. "1,234.56"). Returns an error for empty or
// non-numeric input.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}

// CommissionRatePercent computes the commission as an integer percentage
// of the sale amount, rounded to two decimal places first. A zero sale
// amount yields rate 0 rather than an error.
func CommissionRatePercent(commission, sale float64) int {
	if sale == 0 {
		return 0
	}
	return int(math.Round(RoundFloat(commission/sale, 2) * 100))
}
