package intel

import (
	"testing"

	"domainbid/internal/models"
)

// neutralBidder mirrors the unknown-bidder enrichment: contributes nothing to
// the win probability terms.
func neutralBidder() models.BidderIntel {
	return models.BidderIntel{FoldProbability: 0.5}
}

func TestWinProbabilityBaseByBidders(t *testing.T) {
	cases := []struct {
		bidders int
		want    float64
	}{
		{0, 0.95},
		{1, 0.70},
		{2, 0.50},
		{3, 0.30},
		{7, 0.30},
	}
	for _, tc := range cases {
		got := winProbability(tc.bidders, neutralBidder(), models.DomainIntel{}, 1000, 700)
		approx(t, got, tc.want, "win probability")
	}
}

func TestWinProbabilityOpponentTerms(t *testing.T) {
	b := models.BidderIntel{AvgWinRate: 0.8, FoldProbability: 0.2}
	// 0.70 · (1 − 0.4) + (0.2 − 0.5)·0.2 = 0.42 − 0.06 = 0.36
	got := winProbability(1, b, models.DomainIntel{}, 1000, 700)
	approx(t, got, 0.36, "win probability with strong opponent")
}

func TestWinProbabilityBudgetAdequacy(t *testing.T) {
	// Budget at half of safe max scales by 0.5 + 0.5·0.5 = 0.75.
	got := winProbability(0, neutralBidder(), models.DomainIntel{}, 350, 700)
	approx(t, got, 0.95*0.75, "win probability with thin budget")
}

func TestWinProbabilityVolatility(t *testing.T) {
	d := models.DomainIntel{Volatility: 1.0}
	got := winProbability(0, neutralBidder(), d, 1000, 700)
	approx(t, got, 0.95*0.5, "win probability under max volatility")
}

func TestWinProbabilityClamped(t *testing.T) {
	// A fully folding opponent pushes past 1.0 before the clamp.
	b := models.BidderIntel{FoldProbability: 1.0}
	got := winProbability(0, b, models.DomainIntel{}, 1000, 700)
	if got != 1.0 {
		t.Fatalf("win probability = %v, want clamped 1.0", got)
	}
}

func TestExpectedValueFromPercentile(t *testing.T) {
	d := models.DomainIntel{Volatility: 0.2, Percentiles: models.PricePercentiles{P50: 600}}
	ev := expectedValue(1000, d, 0, 0.5)
	approx(t, ev.ExpectedFinalPrice, 600, "expected final price")
	approx(t, ev.ExpectedProfit, 400, "expected profit")
	approx(t, ev.ExpectedMargin, 0.4, "expected margin")
	approx(t, ev.EV, 200, "ev")
	approx(t, ev.RiskAdjustedEV, 180, "risk adjusted ev")
	approx(t, ev.ROI, 0.3, "roi")
	if ev.Recommendation != models.RecommendModerateBid {
		t.Fatalf("recommendation = %s, want %s", ev.Recommendation, models.RecommendModerateBid)
	}
}

func TestExpectedValueTierFallback(t *testing.T) {
	ev := expectedValue(1000, models.DomainIntel{}, 700, 0.5)
	approx(t, ev.ExpectedFinalPrice, 700, "fallback expected final price")
}

func TestExpectedValueStrongAndWeak(t *testing.T) {
	// Cheap relative to value: roi well above 0.5.
	d := models.DomainIntel{Percentiles: models.PricePercentiles{P50: 300}}
	if ev := expectedValue(1000, d, 0, 0.9); ev.Recommendation != models.RecommendStrongBid {
		t.Fatalf("recommendation = %s, want %s", ev.Recommendation, models.RecommendStrongBid)
	}
	// Expected price above value: negative profit is always a weak bid.
	d = models.DomainIntel{Percentiles: models.PricePercentiles{P50: 1200}}
	if ev := expectedValue(1000, d, 0, 0.9); ev.Recommendation != models.RecommendWeakBid {
		t.Fatalf("recommendation = %s, want %s", ev.Recommendation, models.RecommendWeakBid)
	}
}

func TestResourcePriority(t *testing.T) {
	if got := priorityFor(1.2, 1.0, 0.5); got != models.PriorityHigh {
		t.Fatalf("priority = %s, want %s", got, models.PriorityHigh)
	}
	if got := priorityFor(0.5, 1.0, 0.5); got != models.PriorityMedium {
		t.Fatalf("priority at the boundary = %s, want %s", got, models.PriorityMedium)
	}
	if got := priorityFor(0.49, 1.0, 0.5); got != models.PriorityLow {
		t.Fatalf("priority = %s, want %s", got, models.PriorityLow)
	}
}
