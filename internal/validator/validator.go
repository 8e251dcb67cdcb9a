package validator

import (
	"fmt"
	"strings"

	"domainbid/internal/config"
	"domainbid/internal/models"
)

// Validator applies hard post-checks to a reasoner decision. A rejection sends
// the pipeline to the rule selector; the reasoner is never re-invoked.
type Validator struct {
	Config config.ValidatorConfig
}

var defaultKeywords = []string{"profit", "risk", "competition", "strategy"}

// Validate runs the checks in fixed order and returns the first failure as a
// "KIND: details" reason. Pure.
func (v *Validator) Validate(dec models.StrategyDecision, auction models.AuctionContext) (bool, string) {
	ceiling := models.HardCeilingFor(auction.EstimatedValue)
	if dec.RecommendedBidAmount.GreaterThan(ceiling) {
		return false, fmt.Sprintf("CEILING_EXCEEDED: bid $%s above 80%% of estimated value ($%s)",
			dec.RecommendedBidAmount.StringFixed(2), ceiling.StringFixed(2))
	}

	if dec.RecommendedBidAmount.GreaterThan(auction.BudgetAvailable) {
		return false, fmt.Sprintf("BUDGET_EXCEEDED: bid $%s above available budget $%s",
			dec.RecommendedBidAmount.StringFixed(2), auction.BudgetAvailable.StringFixed(2))
	}

	if ok, reason := v.checkConsistency(dec, auction); !ok {
		return false, reason
	}

	if ok, reason := v.checkReasoningQuality(dec); !ok {
		return false, reason
	}

	minAggressive := v.Config.AggressiveMinUSD
	if minAggressive <= 0 {
		minAggressive = 500
	}
	if dec.Strategy == models.StrategyAggressiveEarly && auction.EstimatedValue.InexactFloat64() < minAggressive {
		return false, fmt.Sprintf("CONTEXT_MISMATCH: aggressive_early on a $%s domain (minimum $%.0f)",
			auction.EstimatedValue.StringFixed(2), minAggressive)
	}

	return true, ""
}

func (v *Validator) checkConsistency(dec models.StrategyDecision, auction models.AuctionContext) (bool, string) {
	if !models.KnownStrategy(dec.Strategy) {
		return false, fmt.Sprintf("LOGICAL_INCONSISTENCY: unknown strategy %q", dec.Strategy)
	}
	if dec.Strategy == models.StrategyDoNotBid && !dec.RecommendedBidAmount.IsZero() {
		return false, fmt.Sprintf("LOGICAL_INCONSISTENCY: do_not_bid with non-zero amount $%s",
			dec.RecommendedBidAmount.StringFixed(2))
	}
	if dec.Strategy == models.StrategyWaitForCloseout && auction.NumBidders > 2 {
		return false, fmt.Sprintf("LOGICAL_INCONSISTENCY: wait_for_closeout with %d active bidders", auction.NumBidders)
	}

	lowMin := v.Config.LowRiskMinConf
	if lowMin <= 0 {
		lowMin = 0.5
	}
	if dec.RiskLevel == models.RiskLow && dec.Confidence < lowMin {
		return false, fmt.Sprintf("LOGICAL_INCONSISTENCY: low risk with confidence %.2f below %.2f", dec.Confidence, lowMin)
	}
	return true, ""
}

func (v *Validator) checkReasoningQuality(dec models.StrategyDecision) (bool, string) {
	minLen := v.Config.MinReasoningLen
	if minLen <= 0 {
		minLen = 100
	}
	reasoning := strings.TrimSpace(dec.Reasoning)
	if len(reasoning) < minLen {
		return false, fmt.Sprintf("REASONING_QUALITY: %d chars, need at least %d", len(reasoning), minLen)
	}

	keywords := v.Config.Keywords
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	minHits := v.Config.MinKeywordHits
	if minHits <= 0 {
		minHits = 2
	}
	lower := strings.ToLower(reasoning)
	hits := 0
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(lower, kw) {
			hits++
		}
	}
	if hits < minHits {
		return false, fmt.Sprintf("REASONING_QUALITY: mentions %d of %v, need %d", hits, keywords, minHits)
	}
	return true, ""
}
