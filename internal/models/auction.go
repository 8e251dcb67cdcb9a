package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Supported auction platforms. Unknown platforms are rejected at input validation.
const (
	PlatformGoDaddy = "GoDaddy"
	PlatformNameJet = "NameJet"
	PlatformDynadot = "Dynadot"
)

var supportedPlatforms = map[string]string{
	"godaddy": PlatformGoDaddy,
	"namejet": PlatformNameJet,
	"dynadot": PlatformDynadot,
}

// NormalizePlatform maps case-insensitive platform names to their canonical form.
// Returns "" when the platform is not supported.
func NormalizePlatform(raw string) string {
	return supportedPlatforms[strings.ToLower(strings.TrimSpace(raw))]
}

// BidderAnalysis summarizes observed behavior of the current high bidder.
type BidderAnalysis struct {
	BotDetected     bool    `json:"bot_detected"`
	CorporateBuyer  bool    `json:"corporate_buyer"`
	AggressionScore float64 `json:"aggression_score"`
	ReactionTimeAvg float64 `json:"reaction_time_avg_s"`
}

// AuctionContext is the immutable per-call input to the decision pipeline.
type AuctionContext struct {
	Domain   string `json:"domain"`
	Platform string `json:"platform"`

	EstimatedValue   decimal.Decimal `json:"estimated_value"`
	CurrentBid       decimal.Decimal `json:"current_bid"`
	YourCurrentProxy decimal.Decimal `json:"your_current_proxy"`
	BudgetAvailable  decimal.Decimal `json:"budget_available"`

	NumBidders     int     `json:"num_bidders"`
	HoursRemaining float64 `json:"hours_remaining"`

	BidderAnalysis BidderAnalysis `json:"bidder_analysis"`

	ThreadID     string `json:"thread_id"`
	LastBidderID string `json:"last_bidder_id,omitempty"`

	// AuctionID identifies the physical auction for outcome recording. Optional
	// on decide calls; derived as domain+thread when empty.
	AuctionID string `json:"auction_id,omitempty"`
}

// Validate rejects contexts the pipeline must never see. Estimated value zero is
// legal here; the safety gate blocks it with an auditable reason instead.
func (a *AuctionContext) Validate() error {
	if a == nil {
		return fmt.Errorf("auction context is nil")
	}
	if strings.TrimSpace(a.Domain) == "" {
		return fmt.Errorf("domain is required")
	}
	if NormalizePlatform(a.Platform) == "" {
		return fmt.Errorf("unsupported platform %q", a.Platform)
	}
	if a.EstimatedValue.IsNegative() {
		return fmt.Errorf("estimated_value must be >= 0")
	}
	if a.CurrentBid.IsNegative() {
		return fmt.Errorf("current_bid must be >= 0")
	}
	if a.YourCurrentProxy.IsNegative() {
		return fmt.Errorf("your_current_proxy must be >= 0")
	}
	if a.BudgetAvailable.IsNegative() {
		return fmt.Errorf("budget_available must be >= 0")
	}
	if a.NumBidders < 0 {
		return fmt.Errorf("num_bidders must be >= 0")
	}
	if a.HoursRemaining < 0 {
		return fmt.Errorf("hours_remaining must be >= 0")
	}
	if a.BidderAnalysis.AggressionScore < 0 || a.BidderAnalysis.AggressionScore > 10 {
		return fmt.Errorf("aggression_score must be within [0,10]")
	}
	if a.BidderAnalysis.ReactionTimeAvg < 0 {
		return fmt.Errorf("reaction_time_avg_s must be >= 0")
	}
	a.Platform = NormalizePlatform(a.Platform)
	return nil
}

// TLD returns the trailing label of the domain, including the dot.
func (a AuctionContext) TLD() string {
	idx := strings.LastIndex(a.Domain, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(a.Domain[idx:])
}
