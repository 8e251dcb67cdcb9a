package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Strategy labels a StrategyDecision may carry. Anything else is rejected.
const (
	StrategyProxyMax        = "proxy_max"
	StrategyLastMinuteSnipe = "last_minute_snipe"
	StrategyIncrementalTest = "incremental_test"
	StrategyWaitForCloseout = "wait_for_closeout"
	StrategyAggressiveEarly = "aggressive_early"
	StrategyDoNotBid        = "do_not_bid"
)

// KnownStrategy reports whether the label is one of the six allowed strategies.
func KnownStrategy(s string) bool {
	switch s {
	case StrategyProxyMax, StrategyLastMinuteSnipe, StrategyIncrementalTest,
		StrategyWaitForCloseout, StrategyAggressiveEarly, StrategyDoNotBid:
		return true
	}
	return false
}

// Risk levels attached to a StrategyDecision.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// NormalizeRiskLevel lower-cases and validates a risk label; "" when unknown.
func NormalizeRiskLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	}
	return ""
}

// StrategyDecision is produced by the reasoner adapter or the rule selector.
type StrategyDecision struct {
	Strategy             string          `json:"strategy"`
	RecommendedBidAmount decimal.Decimal `json:"recommended_bid_amount"`
	Confidence           float64         `json:"confidence"`
	RiskLevel            string          `json:"risk_level"`
	Reasoning            string          `json:"reasoning"`
}

// Proxy actions emitted by the proxy calculator.
const (
	ProxyActionAcceptLoss    = "accept_loss"
	ProxyActionIncreaseProxy = "increase_proxy"
	ProxyActionMaintainProxy = "maintain_proxy"
	ProxyActionInitialSetup  = "initial_setup"
)

// ProxyDecision is the proxy calculator's output for one auction state.
type ProxyDecision struct {
	CurrentProxy       decimal.Decimal `json:"current_proxy"`
	CurrentBid         decimal.Decimal `json:"current_bid"`
	SafeMax            decimal.Decimal `json:"safe_max"`
	NewProxyMax        decimal.Decimal `json:"new_proxy_max"`
	NextBidAmount      decimal.Decimal `json:"next_bid_amount"`
	MaxBudgetForDomain decimal.Decimal `json:"max_budget_for_domain"`
	ShouldIncrease     bool            `json:"should_increase_proxy"`
	ProxyAction        string          `json:"proxy_action"`
	Explanation        string          `json:"explanation"`
}

// Decision sources identify which pipeline layer produced the final answer.
const (
	SourceLLM           = "llm"
	SourceRulesFallback = "rules_fallback"
	SourceSafetyBlock   = "safety_block"
	SourceSystemError   = "system_error"
)

// SafetyCheck is one entry of the safety gate's audit trail.
type SafetyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Value  string `json:"value,omitempty"`
	Msg    string `json:"msg,omitempty"`
}

// FinalDecision is the engine's reply: the chosen strategy plus the proxy math
// plus the audit fields describing which layer decided and why.
type FinalDecision struct {
	Domain   string `json:"domain"`
	Platform string `json:"platform"`
	ThreadID string `json:"thread_id,omitempty"`

	Strategy             string          `json:"strategy"`
	RecommendedBidAmount decimal.Decimal `json:"recommended_bid_amount"`
	Confidence           float64         `json:"confidence"`
	RiskLevel            string          `json:"risk_level"`
	Reasoning            string          `json:"reasoning"`

	Proxy *ProxyDecision `json:"proxy,omitempty"`

	DecisionSource  string        `json:"decision_source"`
	BlockReason     string        `json:"block_reason,omitempty"`
	ValidatorReason string        `json:"validator_reason,omitempty"`
	SafetyChecks    []SafetyCheck `json:"safety_checks,omitempty"`

	ValueTier string  `json:"value_tier"`
	ElapsedMs int64   `json:"elapsed_ms"`
	WinProb   float64 `json:"win_probability,omitempty"`
}
