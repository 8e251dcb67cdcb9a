package proxy

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"domainbid/internal/models"
)

func mkAuction(value, bid, proxy, budget float64, platform string) models.AuctionContext {
	return models.AuctionContext{
		Domain:           "example.com",
		Platform:         platform,
		CurrentBid:       decimal.NewFromFloat(bid),
		EstimatedValue:   decimal.NewFromFloat(value),
		YourCurrentProxy: decimal.NewFromFloat(proxy),
		BudgetAvailable:  decimal.NewFromFloat(budget),
	}
}

func TestIncrementByPlatform(t *testing.T) {
	five := decimal.NewFromInt(5)
	if got := Increment(models.PlatformGoDaddy, decimal.NewFromInt(1000)); !got.Equal(five) {
		t.Fatalf("godaddy increment = %s, want 5", got)
	}
	if got := Increment(models.PlatformNameJet, decimal.NewFromInt(1000)); !got.Equal(five) {
		t.Fatalf("namejet increment = %s, want 5", got)
	}
	if got := Increment("somethingelse", decimal.NewFromInt(1000)); !got.Equal(five) {
		t.Fatalf("unknown platform increment = %s, want 5", got)
	}
	// Dynadot scales at 5% of the current bid once that beats $5.
	if got := Increment(models.PlatformDynadot, decimal.NewFromInt(200)); !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("dynadot increment at $200 = %s, want 10", got)
	}
	if got := Increment(models.PlatformDynadot, decimal.NewFromInt(50)); !got.Equal(five) {
		t.Fatalf("dynadot increment at $50 = %s, want 5", got)
	}
}

func TestComputeInitialSetup(t *testing.T) {
	var c Calculator
	dec := c.Compute(mkAuction(500, 50, 0, 5000, models.PlatformGoDaddy))
	if dec.ProxyAction != models.ProxyActionInitialSetup {
		t.Fatalf("action = %s, want %s", dec.ProxyAction, models.ProxyActionInitialSetup)
	}
	if !dec.NewProxyMax.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("new proxy = %s, want 350", dec.NewProxyMax)
	}
	if !dec.NextBidAmount.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("next bid = %s, want 55", dec.NextBidAmount)
	}
	if !dec.ShouldIncrease {
		t.Fatalf("should_increase_proxy = false, want true")
	}
}

func TestComputeInitialSetupBudgetCapped(t *testing.T) {
	var c Calculator
	dec := c.Compute(mkAuction(500, 50, 0, 200, models.PlatformGoDaddy))
	if !dec.NewProxyMax.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("new proxy = %s, want budget cap 200", dec.NewProxyMax)
	}
}

func TestComputeAcceptLoss(t *testing.T) {
	var c Calculator
	dec := c.Compute(mkAuction(200, 160, 100, 5000, models.PlatformGoDaddy))
	if dec.ProxyAction != models.ProxyActionAcceptLoss {
		t.Fatalf("action = %s, want %s", dec.ProxyAction, models.ProxyActionAcceptLoss)
	}
	if dec.ShouldIncrease {
		t.Fatalf("should_increase_proxy = true, want false")
	}
	if !dec.NewProxyMax.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("new proxy = %s, want existing 100", dec.NewProxyMax)
	}
	if !dec.NextBidAmount.IsZero() {
		t.Fatalf("next bid = %s, want 0", dec.NextBidAmount)
	}
}

func TestComputeAcceptLossAtExactSafeMax(t *testing.T) {
	// safe max of 200 is 140; a bid exactly there is already unprofitable.
	var c Calculator
	dec := c.Compute(mkAuction(200, 140, 100, 5000, models.PlatformGoDaddy))
	if dec.ProxyAction != models.ProxyActionAcceptLoss {
		t.Fatalf("action = %s, want %s", dec.ProxyAction, models.ProxyActionAcceptLoss)
	}
}

func TestComputeLossZoneBeatsInitialSetup(t *testing.T) {
	// No proxy yet, but the bid is already past safe max. Setting one up now
	// would authorize bidding at a loss.
	var c Calculator
	dec := c.Compute(mkAuction(200, 150, 0, 5000, models.PlatformGoDaddy))
	if dec.ProxyAction != models.ProxyActionAcceptLoss {
		t.Fatalf("action = %s, want %s", dec.ProxyAction, models.ProxyActionAcceptLoss)
	}
}

func TestComputeIncreaseProxy(t *testing.T) {
	var c Calculator
	dec := c.Compute(mkAuction(1000, 650, 600, 5000, models.PlatformGoDaddy))
	if dec.ProxyAction != models.ProxyActionIncreaseProxy {
		t.Fatalf("action = %s, want %s", dec.ProxyAction, models.ProxyActionIncreaseProxy)
	}
	if !dec.NewProxyMax.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("new proxy = %s, want 700", dec.NewProxyMax)
	}
	if !dec.NextBidAmount.Equal(decimal.NewFromInt(655)) {
		t.Fatalf("next bid = %s, want 655", dec.NextBidAmount)
	}
}

func TestComputeMaintainProxy(t *testing.T) {
	// Headroom of $10 is under three $5 increments.
	var c Calculator
	dec := c.Compute(mkAuction(1000, 650, 690, 5000, models.PlatformGoDaddy))
	if dec.ProxyAction != models.ProxyActionMaintainProxy {
		t.Fatalf("action = %s, want %s", dec.ProxyAction, models.ProxyActionMaintainProxy)
	}
	if !dec.NewProxyMax.Equal(decimal.NewFromInt(690)) {
		t.Fatalf("new proxy = %s, want unchanged 690", dec.NewProxyMax)
	}
}

func TestComputeMaintainAtExactThreeIncrements(t *testing.T) {
	// Headroom of exactly $15 does not clear the strict > 3·increment bar.
	var c Calculator
	dec := c.Compute(mkAuction(1000, 650, 685, 5000, models.PlatformGoDaddy))
	if dec.ProxyAction != models.ProxyActionMaintainProxy {
		t.Fatalf("action = %s, want %s", dec.ProxyAction, models.ProxyActionMaintainProxy)
	}
}

func TestOverrideForLoss(t *testing.T) {
	dec := models.StrategyDecision{
		Strategy:             models.StrategyProxyMax,
		RecommendedBidAmount: decimal.NewFromInt(140),
		Confidence:           0.85,
		RiskLevel:            models.RiskLow,
		Reasoning:            "Original reasoning.",
	}
	var c Calculator
	p := c.Compute(mkAuction(200, 160, 100, 5000, models.PlatformGoDaddy))
	OverrideForLoss(&dec, p)

	if dec.Strategy != models.StrategyDoNotBid {
		t.Fatalf("strategy = %s, want %s", dec.Strategy, models.StrategyDoNotBid)
	}
	if !dec.RecommendedBidAmount.IsZero() {
		t.Fatalf("amount = %s, want 0", dec.RecommendedBidAmount)
	}
	if dec.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want capped 0.5", dec.Confidence)
	}
	if dec.RiskLevel != models.RiskHigh {
		t.Fatalf("risk = %s, want %s", dec.RiskLevel, models.RiskHigh)
	}
	if !strings.Contains(dec.Reasoning, "OVERRIDE") || !strings.HasPrefix(dec.Reasoning, "Original reasoning.") {
		t.Fatalf("reasoning not appended: %q", dec.Reasoning)
	}
}

func TestOverrideKeepsLowerConfidence(t *testing.T) {
	dec := models.StrategyDecision{Strategy: models.StrategyProxyMax, Confidence: 0.3, Reasoning: "r"}
	OverrideForLoss(&dec, models.ProxyDecision{Explanation: "loss zone"})
	if dec.Confidence != 0.3 {
		t.Fatalf("confidence = %v, want untouched 0.3", dec.Confidence)
	}
}
