package models

import "github.com/shopspring/decimal"

// Two distinct caps, never to be conflated: safe max (70% of value) is the
// target used by the rules and the proxy math; the hard ceiling (80% of
// value) is the absolute cap the validator enforces.
var (
	safeMaxRatio     = decimal.NewFromFloat(0.70)
	hardCeilingRatio = decimal.NewFromFloat(0.80)
)

// SafeMaxFor returns 70% of the estimated value.
func SafeMaxFor(value decimal.Decimal) decimal.Decimal {
	return value.Mul(safeMaxRatio)
}

// HardCeilingFor returns 80% of the estimated value.
func HardCeilingFor(value decimal.Decimal) decimal.Decimal {
	return value.Mul(hardCeilingRatio)
}

// MaxAffordableBid is the common bid cap: min(safe max, budget, hard ceiling).
func MaxAffordableBid(value, budget decimal.Decimal) decimal.Decimal {
	limit := SafeMaxFor(value)
	if budget.LessThan(limit) {
		limit = budget
	}
	if ceiling := HardCeilingFor(value); ceiling.LessThan(limit) {
		limit = ceiling
	}
	return limit
}
