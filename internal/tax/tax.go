// Package tax holds the pure arithmetic primitives the evaluation engine
// composes. Every monetary amount is rounded to 2 decimal places at the point
// of computation, so accumulations downstream work on already-rounded
// per-item figures. Rounding error can therefore compound across items; that
// is the documented numeric policy, not a bug.
package tax

import "github.com/shopspring/decimal"

// AdValorem computes a percentage-of-value charge: round(base * rate, 2).
func AdValorem(baseValue, rate float64) float64 {
	return Round2(baseValue * rate)
}

// FixedFee normalizes a flat charge to cents.
func FixedFee(amount float64) float64 {
	return Round2(amount)
}

// PerUnit computes a quantity-based charge: round(quantity * rate, 2).
func PerUnit(quantity, ratePerUnit float64) float64 {
	return Round2(quantity * ratePerUnit)
}

// Round2 rounds to 2 decimal places, half away from zero. Going through
// decimal avoids the float64 representation traps of naive multiply-and-
// truncate rounding (e.g. 2.675 rounding down).
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
