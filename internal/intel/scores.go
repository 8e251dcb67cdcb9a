package intel

import "domainbid/internal/models"

// winProbability estimates the chance of taking the auction from the field
// size, what is known about the opponent, budget adequacy, and the price
// volatility of the matched domain statistics. Clamped to [0, 1].
func winProbability(numBidders int, bidder models.BidderIntel, domain models.DomainIntel, budget, safeMax float64) float64 {
	var p float64
	switch {
	case numBidders == 0:
		p = 0.95
	case numBidders == 1:
		p = 0.70
	case numBidders == 2:
		p = 0.50
	default:
		p = 0.30
	}

	p *= 1 - bidder.AvgWinRate*0.5
	p += (bidder.FoldProbability - 0.5) * 0.2

	adequacy := 1.0
	if safeMax > 0 {
		ratio := budget / safeMax
		if ratio > 1 {
			ratio = 1
		}
		adequacy = 0.5 + 0.5*ratio
	}
	p *= adequacy

	p *= 1 - domain.Volatility*0.5

	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// expectedValue derives the profit math for the auction. The expected final
// price prefers the matched p50 and falls back to the value-tier mean.
func expectedValue(estimatedValue float64, domain models.DomainIntel, tierMean, winProb float64) models.ExpectedValueAnalysis {
	efp := domain.Percentiles.P50
	if efp <= 0 {
		efp = tierMean
	}

	profit := estimatedValue - efp
	margin := 0.0
	if estimatedValue > 0 {
		margin = profit / estimatedValue
	}
	ev := winProb * profit
	riskAdj := ev * (1 - domain.Volatility*0.5)
	roi := 0.0
	if efp > 0 {
		roi = riskAdj / efp
	}

	rec := models.RecommendWeakBid
	switch {
	case riskAdj > 0 && roi >= 0.5:
		rec = models.RecommendStrongBid
	case riskAdj > 0 && roi >= 0.15:
		rec = models.RecommendModerateBid
	}

	return models.ExpectedValueAnalysis{
		ExpectedFinalPrice: efp,
		ExpectedProfit:     profit,
		ExpectedMargin:     margin,
		EV:                 ev,
		RiskAdjustedEV:     riskAdj,
		ROI:                roi,
		Recommendation:     rec,
	}
}

// resourceScore ranks how much attention the auction deserves relative to
// others in flight.
func resourceScore(winProb, margin, roi float64) float64 {
	return winProb * margin * (1 + roi)
}

func priorityFor(score, highCutoff, mediumCutoff float64) string {
	switch {
	case score > highCutoff:
		return models.PriorityHigh
	case score >= mediumCutoff:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
