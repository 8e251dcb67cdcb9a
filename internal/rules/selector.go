package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"domainbid/internal/models"
)

// Selector is the deterministic fallback strategy picker. It always produces
// a decision; confidence stays within [0.70, 0.90] and amounts never exceed
// min(safe max, budget, hard ceiling).
type Selector struct{}

const (
	confidenceFloor = 0.70
	confidenceCeil  = 0.90
)

// Select picks a strategy by value tier and auction conditions. Pure given the
// enrichment it is handed.
func (s *Selector) Select(auction models.AuctionContext, intel models.MarketIntelligence) models.StrategyDecision {
	tier := models.TierForValue(auction.EstimatedValue)
	amount := models.MaxAffordableBid(auction.EstimatedValue, auction.BudgetAvailable)

	var dec models.StrategyDecision
	switch tier {
	case models.TierHigh:
		dec = s.selectHigh(auction, amount)
	case models.TierMedium:
		dec = s.selectMedium(auction, amount)
	default:
		dec = s.selectLow(auction, amount)
	}

	dec.Confidence = clampConfidence(dec.Confidence)
	dec.Reasoning = fmt.Sprintf(
		"%s Tier %s domain valued at $%s with %d active bidders and %.1fh remaining; win probability %.2f. "+
			"Amount capped at $%s to protect profit margin against competition risk.",
		dec.Reasoning, tier, auction.EstimatedValue.StringFixed(2), auction.NumBidders,
		auction.HoursRemaining, intel.WinProbability, amount.StringFixed(2))
	return dec
}

func (s *Selector) selectHigh(auction models.AuctionContext, amount decimal.Decimal) models.StrategyDecision {
	switch {
	case auction.BidderAnalysis.BotDetected:
		return models.StrategyDecision{
			Strategy:             models.StrategyLastMinuteSnipe,
			RecommendedBidAmount: amount,
			Confidence:           0.85,
			RiskLevel:            models.RiskMedium,
			Reasoning:            "Automated opponent detected on a high-value domain: sniping at safe max denies the bot reaction time.",
		}
	case auction.NumBidders >= 3:
		return models.StrategyDecision{
			Strategy:             models.StrategyLastMinuteSnipe,
			RecommendedBidAmount: amount,
			Confidence:           0.80,
			RiskLevel:            models.RiskMedium,
			Reasoning:            "Heavy competition on a high-value domain: a late snipe avoids feeding the escalation strategy of other bidders.",
		}
	case auction.NumBidders >= 1:
		return models.StrategyDecision{
			Strategy:             models.StrategyProxyMax,
			RecommendedBidAmount: amount,
			Confidence:           0.75,
			RiskLevel:            models.RiskLow,
			Reasoning:            "Light competition on a high-value domain: a proxy at safe max defends the position without manual intervention.",
		}
	case auction.HoursRemaining < 1:
		return models.StrategyDecision{
			Strategy:             models.StrategyWaitForCloseout,
			RecommendedBidAmount: amount,
			Confidence:           0.72,
			RiskLevel:            models.RiskLow,
			Reasoning:            "No bidders and under an hour left on a high-value domain: waiting for closeout keeps the entry price minimal.",
		}
	default:
		return models.StrategyDecision{
			Strategy:             models.StrategyProxyMax,
			RecommendedBidAmount: amount,
			Confidence:           0.75,
			RiskLevel:            models.RiskLow,
			Reasoning:            "Quiet high-value auction with time on the clock: an early proxy secures priority while interest is low.",
		}
	}
}

func (s *Selector) selectMedium(auction models.AuctionContext, amount decimal.Decimal) models.StrategyDecision {
	switch {
	case auction.Platform == models.PlatformGoDaddy && auction.HoursRemaining < 1:
		// GoDaddy extends the clock on late bids; one decisive snipe beats drip bidding.
		return models.StrategyDecision{
			Strategy:             models.StrategyLastMinuteSnipe,
			RecommendedBidAmount: amount,
			Confidence:           0.80,
			RiskLevel:            models.RiskMedium,
			Reasoning:            "GoDaddy closeout with the extension rule in play: a single strong late bid limits the extension war.",
		}
	case auction.NumBidders >= 3:
		return models.StrategyDecision{
			Strategy:             models.StrategyIncrementalTest,
			RecommendedBidAmount: amount,
			Confidence:           0.72,
			RiskLevel:            models.RiskMedium,
			Reasoning:            "Crowded mid-value auction: incremental probing reveals how committed the competition is before spending.",
		}
	default:
		return models.StrategyDecision{
			Strategy:             models.StrategyProxyMax,
			RecommendedBidAmount: amount,
			Confidence:           0.75,
			RiskLevel:            models.RiskLow,
			Reasoning:            "Mid-value domain with manageable competition: a proxy at safe max is the cheapest way to stay ahead.",
		}
	}
}

func (s *Selector) selectLow(auction models.AuctionContext, amount decimal.Decimal) models.StrategyDecision {
	if auction.NumBidders == 0 {
		return models.StrategyDecision{
			Strategy:             models.StrategyWaitForCloseout,
			RecommendedBidAmount: amount,
			Confidence:           0.70,
			RiskLevel:            models.RiskLow,
			Reasoning:            "No interest in a low-value domain: waiting until closeout risks little and may take it near reserve.",
		}
	}
	return models.StrategyDecision{
		Strategy:             models.StrategyIncrementalTest,
		RecommendedBidAmount: amount,
		Confidence:           0.70,
		RiskLevel:            models.RiskMedium,
		Reasoning:            "Some interest in a low-value domain: small increments test resolve without overcommitting the budget.",
	}
}

func clampConfidence(c float64) float64 {
	if c < confidenceFloor {
		return confidenceFloor
	}
	if c > confidenceCeil {
		return confidenceCeil
	}
	return c
}
