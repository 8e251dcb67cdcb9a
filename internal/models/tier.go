package models

import "github.com/shopspring/decimal"

// Value tiers partition domains by estimated value. Boundaries resolve upward:
// exactly $1000 is high, exactly $100 is medium.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

var (
	tierHighFloor   = decimal.NewFromInt(1000)
	tierMediumFloor = decimal.NewFromInt(100)
)

// TierForValue classifies an estimated value into a tier.
func TierForValue(value decimal.Decimal) string {
	switch {
	case value.GreaterThanOrEqual(tierHighFloor):
		return TierHigh
	case value.GreaterThanOrEqual(tierMediumFloor):
		return TierMedium
	default:
		return TierLow
	}
}
