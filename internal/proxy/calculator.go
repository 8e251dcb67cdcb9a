package proxy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"domainbid/internal/models"
)

var (
	baseIncrement   = decimal.NewFromInt(5)
	dynadotBidRatio = decimal.NewFromFloat(0.05)
	threeIncrements = decimal.NewFromInt(3)
)

// Calculator turns an auction state into proxy instructions: where the
// standing maximum should sit and what the next manual bid would be. Pure.
type Calculator struct{}

// Increment returns the platform's minimum bid step. Dynadot scales with the
// current bid; everything else moves in $5 steps.
func Increment(platform string, currentBid decimal.Decimal) decimal.Decimal {
	if platform == models.PlatformDynadot {
		if scaled := currentBid.Mul(dynadotBidRatio); scaled.GreaterThan(baseIncrement) {
			return scaled
		}
	}
	return baseIncrement
}

// Compute evaluates exactly one of three mutually exclusive scenarios. The
// loss-zone check runs first so that a bid at or past safe max always yields
// accept_loss, even when no proxy has been configured yet.
func (c *Calculator) Compute(auction models.AuctionContext) models.ProxyDecision {
	safeMax := models.SafeMaxFor(auction.EstimatedValue)
	affordable := models.MaxAffordableBid(auction.EstimatedValue, auction.BudgetAvailable)
	increment := Increment(auction.Platform, auction.CurrentBid)

	dec := models.ProxyDecision{
		CurrentProxy:       auction.YourCurrentProxy,
		CurrentBid:         auction.CurrentBid,
		SafeMax:            safeMax,
		MaxBudgetForDomain: affordable,
	}

	switch {
	case safeMax.LessThanOrEqual(auction.CurrentBid):
		dec.ShouldIncrease = false
		dec.ProxyAction = models.ProxyActionAcceptLoss
		dec.NewProxyMax = auction.YourCurrentProxy
		dec.NextBidAmount = decimal.Zero
		dec.Explanation = fmt.Sprintf(
			"current bid $%s has reached the safe maximum $%s (70%% of estimated value); any further bid locks in negative margin",
			auction.CurrentBid.StringFixed(2), safeMax.StringFixed(2))

	case auction.YourCurrentProxy.IsZero():
		dec.ShouldIncrease = true
		dec.ProxyAction = models.ProxyActionInitialSetup
		dec.NewProxyMax = affordable
		dec.NextBidAmount = auction.CurrentBid.Add(increment)
		dec.Explanation = fmt.Sprintf(
			"no proxy configured yet; setting the standing maximum to $%s and opening at $%s",
			affordable.StringFixed(2), dec.NextBidAmount.StringFixed(2))

	default:
		headroom := affordable.Sub(auction.YourCurrentProxy)
		if headroom.GreaterThan(threeIncrements.Mul(increment)) {
			dec.ShouldIncrease = true
			dec.ProxyAction = models.ProxyActionIncreaseProxy
			dec.NewProxyMax = affordable
			dec.NextBidAmount = auction.CurrentBid.Add(increment)
			dec.Explanation = fmt.Sprintf(
				"proxy $%s has $%s of headroom below the $%s cap; raising it keeps the position defended",
				auction.YourCurrentProxy.StringFixed(2), headroom.StringFixed(2), affordable.StringFixed(2))
		} else {
			dec.ShouldIncrease = false
			dec.ProxyAction = models.ProxyActionMaintainProxy
			dec.NewProxyMax = auction.YourCurrentProxy
			dec.NextBidAmount = decimal.Zero
			dec.Explanation = fmt.Sprintf(
				"proxy $%s is within three increments of the $%s cap; a raise buys nothing",
				auction.YourCurrentProxy.StringFixed(2), affordable.StringFixed(2))
		}
	}
	return dec
}

// OverrideForLoss rewrites a strategy decision after an accept_loss verdict.
// The auction is already in the loss zone, so whatever the upstream layer
// wanted, the only profitable move is to stop.
func OverrideForLoss(dec *models.StrategyDecision, proxy models.ProxyDecision) {
	dec.Strategy = models.StrategyDoNotBid
	dec.RecommendedBidAmount = decimal.Zero
	if dec.Confidence > 0.5 {
		dec.Confidence = 0.5
	}
	dec.RiskLevel = models.RiskHigh
	dec.Reasoning = fmt.Sprintf(
		"%s OVERRIDE: %s.", dec.Reasoning, proxy.Explanation)
}
