package money

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Round2 rounds v to pennies. The exact binary value of v is rounded, ties
// to even, so 2.675 (stored as 2.67499...) gives 2.67 and 0.125 gives 0.12.
// Non-finite values are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return pennies(v).InexactFloat64()
}

// pennies holds v rounded to two places. FormatFloat rounds the exact
// binary expansion rather than the shortest decimal form.
func pennies(v float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 2, 64))
}

// Format renders v as a pound amount with two decimals, e.g. "£1,993.45".
// It rounds the same way as Round2.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	d := pennies(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	s := d.StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-2:]

	grouped := make([]byte, 0, len(whole)+len(whole)/3)
	for i := range len(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, whole[i])
	}
	return sign + "£" + string(grouped) + "." + frac
}
