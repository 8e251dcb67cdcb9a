package validator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"domainbid/internal/config"
	"domainbid/internal/models"
)

const goodReasoning = "The expected profit margin is strong relative to the risk of escalation; " +
	"competition is light with only one opponent, so a proxy strategy controls spend while staying under the ceiling."

func mkDecision(strategy string, amount int64) models.StrategyDecision {
	return models.StrategyDecision{
		Strategy:             strategy,
		RecommendedBidAmount: decimal.NewFromInt(amount),
		Confidence:           0.8,
		RiskLevel:            models.RiskMedium,
		Reasoning:            goodReasoning,
	}
}

func mkAuction(value, budget int64, bidders int) models.AuctionContext {
	return models.AuctionContext{
		Domain:          "example.com",
		Platform:        models.PlatformGoDaddy,
		EstimatedValue:  decimal.NewFromInt(value),
		BudgetAvailable: decimal.NewFromInt(budget),
		NumBidders:      bidders,
	}
}

func TestValidate_Accepts(t *testing.T) {
	v := &Validator{}
	ok, reason := v.Validate(mkDecision(models.StrategyProxyMax, 700), mkAuction(1000, 5000, 2))
	if !ok {
		t.Fatalf("rejected: %s", reason)
	}
}

func TestValidate_CeilingBoundary(t *testing.T) {
	v := &Validator{}

	// Exactly 80% of value passes.
	ok, reason := v.Validate(mkDecision(models.StrategyProxyMax, 800), mkAuction(1000, 5000, 2))
	if !ok {
		t.Fatalf("amount=800 value=1000 rejected: %s", reason)
	}

	ok, reason = v.Validate(mkDecision(models.StrategyProxyMax, 801), mkAuction(1000, 5000, 2))
	if ok || !strings.HasPrefix(reason, "CEILING_EXCEEDED") {
		t.Fatalf("ok=%v reason=%q want CEILING_EXCEEDED", ok, reason)
	}
}

func TestValidate_Budget(t *testing.T) {
	v := &Validator{}
	ok, reason := v.Validate(mkDecision(models.StrategyProxyMax, 700), mkAuction(1000, 600, 2))
	if ok || !strings.HasPrefix(reason, "BUDGET_EXCEEDED") {
		t.Fatalf("ok=%v reason=%q want BUDGET_EXCEEDED", ok, reason)
	}
}

func TestValidate_DoNotBidWithAmount(t *testing.T) {
	v := &Validator{}
	ok, reason := v.Validate(mkDecision(models.StrategyDoNotBid, 50), mkAuction(1000, 5000, 2))
	if ok || !strings.HasPrefix(reason, "LOGICAL_INCONSISTENCY") {
		t.Fatalf("ok=%v reason=%q want LOGICAL_INCONSISTENCY", ok, reason)
	}
}

func TestValidate_WaitForCloseoutBidders(t *testing.T) {
	v := &Validator{}

	ok, reason := v.Validate(mkDecision(models.StrategyWaitForCloseout, 0), mkAuction(1000, 5000, 2))
	if !ok {
		t.Fatalf("bidders=2 rejected: %s", reason)
	}

	ok, reason = v.Validate(mkDecision(models.StrategyWaitForCloseout, 0), mkAuction(1000, 5000, 3))
	if ok || !strings.HasPrefix(reason, "LOGICAL_INCONSISTENCY") {
		t.Fatalf("ok=%v reason=%q want LOGICAL_INCONSISTENCY for 3 bidders", ok, reason)
	}
}

func TestValidate_LowRiskLowConfidence(t *testing.T) {
	v := &Validator{}
	dec := mkDecision(models.StrategyProxyMax, 500)
	dec.RiskLevel = models.RiskLow
	dec.Confidence = 0.4
	ok, reason := v.Validate(dec, mkAuction(1000, 5000, 2))
	if ok || !strings.HasPrefix(reason, "LOGICAL_INCONSISTENCY") {
		t.Fatalf("ok=%v reason=%q want LOGICAL_INCONSISTENCY", ok, reason)
	}
}

func TestValidate_ReasoningTooShort(t *testing.T) {
	v := &Validator{}
	dec := mkDecision(models.StrategyProxyMax, 500)
	dec.Reasoning = "profit and risk look fine"
	ok, reason := v.Validate(dec, mkAuction(1000, 5000, 2))
	if ok || !strings.HasPrefix(reason, "REASONING_QUALITY") {
		t.Fatalf("ok=%v reason=%q want REASONING_QUALITY", ok, reason)
	}
}

func TestValidate_ReasoningKeywords(t *testing.T) {
	v := &Validator{}
	dec := mkDecision(models.StrategyProxyMax, 500)
	dec.Reasoning = strings.Repeat("the auction is interesting and the domain looks fine to me today. ", 3)
	ok, reason := v.Validate(dec, mkAuction(1000, 5000, 2))
	if ok || !strings.HasPrefix(reason, "REASONING_QUALITY") {
		t.Fatalf("ok=%v reason=%q want REASONING_QUALITY", ok, reason)
	}
}

func TestValidate_AggressiveEarlyMinValue(t *testing.T) {
	v := &Validator{}

	ok, reason := v.Validate(mkDecision(models.StrategyAggressiveEarly, 300), mkAuction(600, 5000, 1))
	if !ok {
		t.Fatalf("value=600 rejected: %s", reason)
	}

	ok, reason = v.Validate(mkDecision(models.StrategyAggressiveEarly, 100), mkAuction(400, 5000, 1))
	if ok || !strings.HasPrefix(reason, "CONTEXT_MISMATCH") {
		t.Fatalf("ok=%v reason=%q want CONTEXT_MISMATCH", ok, reason)
	}
}

func TestValidate_ConfigOverrides(t *testing.T) {
	v := &Validator{Config: config.ValidatorConfig{
		MinReasoningLen: 10,
		Keywords:        []string{"margin"},
		MinKeywordHits:  1,
	}}
	dec := mkDecision(models.StrategyProxyMax, 500)
	dec.Reasoning = "margin is healthy"
	ok, reason := v.Validate(dec, mkAuction(1000, 5000, 2))
	if !ok {
		t.Fatalf("rejected with relaxed config: %s", reason)
	}
}
