package reasoner

import (
	"fmt"
	"strings"

	"domainbid/internal/models"
)

const systemPrompt = `You are a domain-name auction bidding strategist. Given one auction state with market intelligence, pick exactly one strategy and a bid amount.

Allowed strategies:
- proxy_max: set a standing proxy at the recommended amount and let the platform defend it
- last_minute_snipe: hold fire, place one strong bid in the closing minutes
- incremental_test: small probing raises to read how committed the competition is
- wait_for_closeout: no action now, re-evaluate at closeout
- aggressive_early: a strong early bid to discourage the field
- do_not_bid: stand down entirely (amount must be 0)

Hard rules:
- recommended_bid_amount must never exceed the hard ceiling (80% of estimated value) or the available budget
- target the safe maximum (70% of estimated value) unless the intelligence strongly argues otherwise
- reasoning must be concrete: name the profit math, the risk, and the competitive picture you relied on

Respond ONLY with a JSON object in exactly this shape:
{"strategy": "<one of the six labels>", "recommended_bid_amount": <number>, "confidence": <0.0-1.0>, "risk_level": "low"|"medium"|"high", "reasoning": "<at least 100 characters>"}`

// SystemPrompt frames the reasoner's role and the response contract.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt renders one auction state, its enrichment, and any usable
// history into the structured block the reasoner responds to.
func UserPrompt(auction models.AuctionContext, intel models.MarketIntelligence, hist models.HistoricalContext) string {
	tier := models.TierForValue(auction.EstimatedValue)
	safeMax := models.SafeMaxFor(auction.EstimatedValue)
	ceiling := models.HardCeilingFor(auction.EstimatedValue)

	var b strings.Builder

	fmt.Fprintf(&b, "AUCTION\n")
	fmt.Fprintf(&b, "- domain: %s\n", auction.Domain)
	fmt.Fprintf(&b, "- platform: %s\n", auction.Platform)
	fmt.Fprintf(&b, "- value tier: %s (estimated value $%s)\n", tier, auction.EstimatedValue.StringFixed(2))
	fmt.Fprintf(&b, "- current bid: $%s\n", auction.CurrentBid.StringFixed(2))
	fmt.Fprintf(&b, "- your current proxy: $%s\n", auction.YourCurrentProxy.StringFixed(2))
	fmt.Fprintf(&b, "- active bidders: %d\n", auction.NumBidders)
	fmt.Fprintf(&b, "- hours remaining: %.1f\n", auction.HoursRemaining)

	fmt.Fprintf(&b, "\nCONSTRAINTS\n")
	fmt.Fprintf(&b, "- budget available: $%s\n", auction.BudgetAvailable.StringFixed(2))
	fmt.Fprintf(&b, "- safe maximum (70%% of value): $%s\n", safeMax.StringFixed(2))
	fmt.Fprintf(&b, "- hard ceiling (80%% of value): $%s\n", ceiling.StringFixed(2))

	fmt.Fprintf(&b, "\nPLATFORM NOTES\n- %s\n", platformNotes(auction.Platform))

	fmt.Fprintf(&b, "\nCURRENT HIGH BIDDER\n")
	fmt.Fprintf(&b, "- bot detected: %v\n", auction.BidderAnalysis.BotDetected)
	fmt.Fprintf(&b, "- corporate buyer: %v\n", auction.BidderAnalysis.CorporateBuyer)
	fmt.Fprintf(&b, "- aggression score: %.1f/10\n", auction.BidderAnalysis.AggressionScore)
	fmt.Fprintf(&b, "- avg reaction time: %.0fs\n", auction.BidderAnalysis.ReactionTimeAvg)

	fmt.Fprintf(&b, "\nMARKET INTELLIGENCE\n")
	fmt.Fprintf(&b, "- opponent cluster: %s (sample %d, win rate %.2f, fold probability %.2f)\n",
		intel.Bidder.BehavioralCluster, intel.Bidder.SampleSize, intel.Bidder.AvgWinRate, intel.Bidder.FoldProbability)
	fmt.Fprintf(&b, "- domain stats match: %s (confidence %.2f, sample %d)\n",
		intel.Domain.MatchType, intel.Domain.Confidence, intel.Domain.SampleSize)
	if intel.Domain.MatchType != models.MatchNone {
		fmt.Fprintf(&b, "- typical final price: $%.2f (p50 $%.2f, p90 $%.2f, volatility %.2f)\n",
			intel.Domain.AvgFinalPrice, intel.Domain.Percentiles.P50, intel.Domain.Percentiles.P90, intel.Domain.Volatility)
	}
	fmt.Fprintf(&b, "- platform archetype: escalation %s, sniper dominated %v, proxy driven %v\n",
		intel.Archetype.EscalationSpeed, intel.Archetype.SniperDominated, intel.Archetype.ProxyDriven)
	fmt.Fprintf(&b, "- win probability: %.2f\n", intel.WinProbability)
	fmt.Fprintf(&b, "- expected final price: $%.2f, expected profit: $%.2f, risk-adjusted EV: $%.2f, ROI: %.2f\n",
		intel.EV.ExpectedFinalPrice, intel.EV.ExpectedProfit, intel.EV.RiskAdjustedEV, intel.EV.ROI)
	fmt.Fprintf(&b, "- resource priority: %s (%s)\n", intel.ResourcePriority, intel.EV.Recommendation)

	if !hist.Empty() {
		fmt.Fprintf(&b, "\nHISTORICAL CONTEXT\n")
		if hist.SimilarCount > 0 {
			fmt.Fprintf(&b, "- similar auctions recorded: %d, our win rate %.2f, avg final price $%.2f\n",
				hist.SimilarCount, hist.SimilarWinRate, hist.SimilarAvgPrice)
		}
		if hist.BestStrategy != "" {
			fmt.Fprintf(&b, "- best performing strategy here: %s (win rate %.2f over %d uses)\n",
				hist.BestStrategy, hist.BestStrategyWinRate, hist.BestStrategySamples)
		}
		for _, r := range hist.ThreadRounds {
			fmt.Fprintf(&b, "- round %d of this thread: %s at $%s, result %s\n",
				r.RoundNumber, r.Strategy, r.Amount.StringFixed(2), r.Result)
		}
	}

	fmt.Fprintf(&b, "\nTASK\nPick the strategy and amount for this state. Respond with the JSON object only.")
	return b.String()
}

func platformNotes(platform string) string {
	switch platform {
	case models.PlatformGoDaddy:
		return "GoDaddy: late bids extend the clock; a snipe must be decisive or it just restarts the timer"
	case models.PlatformNameJet:
		return "NameJet: heavy backorder and proxy activity; standing proxies are usually set before closeout"
	case models.PlatformDynadot:
		return "Dynadot: the minimum increment scales with the current bid (5% once above $100)"
	default:
		return "no platform-specific behavior on record"
	}
}
