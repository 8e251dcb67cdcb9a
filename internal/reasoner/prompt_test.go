package reasoner

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"domainbid/internal/models"
)

func promptAuction() models.AuctionContext {
	return models.AuctionContext{
		Domain:          "crypto.com",
		Platform:        models.PlatformGoDaddy,
		EstimatedValue:  decimal.NewFromInt(500),
		CurrentBid:      decimal.NewFromInt(50),
		BudgetAvailable: decimal.NewFromInt(2000),
		NumBidders:      2,
		HoursRemaining:  3,
	}
}

func TestSystemPromptNamesAllStrategies(t *testing.T) {
	sys := SystemPrompt()
	for _, s := range []string{
		models.StrategyProxyMax, models.StrategyLastMinuteSnipe, models.StrategyIncrementalTest,
		models.StrategyWaitForCloseout, models.StrategyAggressiveEarly, models.StrategyDoNotBid,
	} {
		if !strings.Contains(sys, s) {
			t.Fatalf("system prompt missing strategy %s", s)
		}
	}
	if !strings.Contains(sys, "JSON") {
		t.Fatalf("system prompt does not demand JSON")
	}
}

func TestUserPromptCoreFields(t *testing.T) {
	p := UserPrompt(promptAuction(), models.MarketIntelligence{
		Bidder: models.BidderIntel{BehavioralCluster: models.ClusterSniper},
		Domain: models.DomainIntel{MatchType: models.MatchExact, AvgFinalPrice: 420},
	}, models.HistoricalContext{})

	for _, want := range []string{
		"crypto.com",
		"GoDaddy",
		"value tier: medium",
		"safe maximum (70% of value): $350.00",
		"hard ceiling (80% of value): $400.00",
		"budget available: $2000.00",
		"opponent cluster: sniper",
		"extend the clock",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, p)
		}
	}
	if strings.Contains(p, "HISTORICAL CONTEXT") {
		t.Fatalf("empty history must not render a history block")
	}
}

func TestUserPromptHistoryBlock(t *testing.T) {
	hist := models.HistoricalContext{
		SimilarCount:        12,
		SimilarWinRate:      0.58,
		SimilarAvgPrice:     310,
		BestStrategy:        models.StrategyLastMinuteSnipe,
		BestStrategyWinRate: 0.7,
		BestStrategySamples: 10,
		ThreadRounds: []models.ThreadRoundSummary{
			{RoundNumber: 1, Strategy: models.StrategyProxyMax, Amount: decimal.NewFromInt(200), Result: models.RoundOutbid},
		},
	}
	p := UserPrompt(promptAuction(), models.MarketIntelligence{}, hist)

	for _, want := range []string{
		"HISTORICAL CONTEXT",
		"similar auctions recorded: 12",
		"best performing strategy here: last_minute_snipe",
		"round 1 of this thread: proxy_max at $200.00, result outbid",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, p)
		}
	}
}
