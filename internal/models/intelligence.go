package models

// Behavioral clusters assigned to bidders by the intelligence layer.
const (
	ClusterCasual     = "casual"
	ClusterAggressive = "aggressive"
	ClusterSniper     = "sniper"
	ClusterBot        = "bot"
	ClusterCorporate  = "corporate"
	ClusterUnknown    = "unknown"
)

// Domain statistics match tiers, ordered from most to least specific.
const (
	MatchExact       = "exact"
	MatchTLDPattern  = "tld_pattern"
	MatchValueTier   = "value_tier_pattern"
	MatchPlatformAvg = "platform_avg"
	MatchNone        = "none"
)

// Resource priority buckets.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// EV recommendation labels.
const (
	RecommendStrongBid   = "STRONG_BID"
	RecommendModerateBid = "MODERATE_BID"
	RecommendWeakBid     = "WEAK_BID"
)

// BidderIntel describes the opponent: exact profile when Found, otherwise the
// nearest behavioral cluster, or unknown when no usable match exists.
type BidderIntel struct {
	Found             bool    `json:"found"`
	BehavioralCluster string  `json:"behavioral_cluster"`
	SampleSize        int     `json:"sample_size"`
	AvgWinRate        float64 `json:"avg_win_rate"`
	FoldProbability   float64 `json:"fold_probability"`
	IsAggressive      bool    `json:"is_aggressive"`
	IsSniper          bool    `json:"is_sniper"`
	IsProxyHeavy      bool    `json:"is_proxy_heavy"`
	LateBidRatio      float64 `json:"late_bid_ratio"`
	AvgReactionTime   float64 `json:"avg_reaction_time_s"`
}

// PricePercentiles of the matched domain statistics.
type PricePercentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// DomainIntel is a price-history view of the domain, resolved through the
// exact > tld > value-tier > platform fallback chain.
type DomainIntel struct {
	MatchType     string           `json:"match_type"`
	AvgFinalPrice float64          `json:"avg_final_price"`
	Percentiles   PricePercentiles `json:"price_percentiles"`
	Volatility    float64          `json:"volatility"`
	SampleSize    int              `json:"sample_size"`
	Confidence    float64          `json:"confidence"`
}

// ArchetypeIntel is the platform-level behavior profile.
type ArchetypeIntel struct {
	AvgLateBidRatio float64 `json:"avg_late_bid_ratio"`
	AvgBidJump      float64 `json:"avg_bid_jump"`
	AvgDurationS    float64 `json:"avg_duration_s"`
	EscalationSpeed string  `json:"escalation_speed"`
	SniperDominated bool    `json:"sniper_dominated"`
	ProxyDriven     bool    `json:"proxy_driven"`
}

// ExpectedValueAnalysis is the profit math derived from the domain statistics.
type ExpectedValueAnalysis struct {
	ExpectedFinalPrice float64 `json:"expected_final_price"`
	ExpectedProfit     float64 `json:"expected_profit"`
	ExpectedMargin     float64 `json:"expected_margin"`
	EV                 float64 `json:"ev"`
	RiskAdjustedEV     float64 `json:"risk_adjusted_ev"`
	ROI                float64 `json:"roi"`
	Recommendation     string  `json:"recommendation"`
}

// MarketIntelligence is the enrichment attached to every decision. Lookups fail
// open: a miss produces unknown/zero fields, never an error.
type MarketIntelligence struct {
	Bidder    BidderIntel    `json:"bidder"`
	Domain    DomainIntel    `json:"domain"`
	Archetype ArchetypeIntel `json:"archetype"`

	WinProbability float64               `json:"win_probability"`
	EV             ExpectedValueAnalysis `json:"expected_value_analysis"`

	ResourceScore    float64 `json:"resource_score"`
	ResourcePriority string  `json:"resource_priority"`
}
