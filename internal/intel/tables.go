package intel

import (
	"math"
	"strings"
	"time"

	"domainbid/internal/models"
)

// BidderProfile is one row of the bidder statistics table.
type BidderProfile struct {
	BidderID        string
	TotalAuctions   int
	AvgBidIncrease  float64
	AvgReactionTime float64
	WinRate         float64
	LateBidRatio    float64
	AggressionScore float64
}

// DomainStats is one row of the domain price-history table.
type DomainStats struct {
	Domain        string
	AvgFinalPrice float64
	Volatility    float64
	P25           float64
	P50           float64
	P75           float64
	P90           float64
	SampleSize    int
}

// PlatformArchetype is one row of the per-platform behavior table.
type PlatformArchetype struct {
	Platform        string
	AvgLateBidRatio float64
	AvgBidJump      float64
	AvgDurationS    float64
}

// Tables is one immutable snapshot of the three statistics tables. A snapshot
// is built once by the loader and shared read-only across calls; reloads swap
// in a fresh snapshot rather than mutating this one.
type Tables struct {
	Bidders    map[string]BidderProfile
	Domains    map[string]DomainStats
	Archetypes map[string]PlatformArchetype

	LoadedAt    time.Time
	SkippedRows int
}

func NewTables() *Tables {
	return &Tables{
		Bidders:    make(map[string]BidderProfile),
		Domains:    make(map[string]DomainStats),
		Archetypes: make(map[string]PlatformArchetype),
	}
}

// BidderQuery carries the observable behavior of the current opponent, used
// for cluster matching when the id itself is unknown.
type BidderQuery struct {
	BidderID        string
	AggressionScore float64
	ReactionTimeS   float64
}

// LookupBidder resolves exact id first, then falls back to a behavioral
// cluster of profiles within the aggression and reaction-time tolerances.
// Fewer than minSamples matches yields unknown.
func (t *Tables) LookupBidder(q BidderQuery, aggTol, reactTolS float64, minSamples int) models.BidderIntel {
	if p, ok := t.Bidders[q.BidderID]; ok && q.BidderID != "" {
		return models.BidderIntel{
			Found:             true,
			BehavioralCluster: classifyBidder(p),
			SampleSize:        p.TotalAuctions,
			AvgWinRate:        p.WinRate,
			FoldProbability:   1 - p.WinRate,
			IsAggressive:      p.AggressionScore >= 7,
			IsSniper:          p.LateBidRatio > 0.7,
			IsProxyHeavy:      p.LateBidRatio < 0.3,
			LateBidRatio:      p.LateBidRatio,
			AvgReactionTime:   p.AvgReactionTime,
		}
	}

	var matched []BidderProfile
	for _, p := range t.Bidders {
		if math.Abs(p.AggressionScore-q.AggressionScore) <= aggTol &&
			math.Abs(p.AvgReactionTime-q.ReactionTimeS) <= reactTolS {
			matched = append(matched, p)
		}
	}
	if len(matched) < minSamples {
		return unknownBidder()
	}

	var agg BidderProfile
	for _, p := range matched {
		agg.WinRate += p.WinRate
		agg.LateBidRatio += p.LateBidRatio
		agg.AvgReactionTime += p.AvgReactionTime
		agg.AggressionScore += p.AggressionScore
		agg.TotalAuctions += p.TotalAuctions
	}
	n := float64(len(matched))
	agg.WinRate /= n
	agg.LateBidRatio /= n
	agg.AvgReactionTime /= n
	agg.AggressionScore /= n

	return models.BidderIntel{
		Found:             false,
		BehavioralCluster: classifyBidder(agg),
		SampleSize:        len(matched),
		AvgWinRate:        agg.WinRate,
		FoldProbability:   1 - agg.WinRate,
		IsAggressive:      agg.AggressionScore >= 7,
		IsSniper:          agg.LateBidRatio > 0.7,
		IsProxyHeavy:      agg.LateBidRatio < 0.3,
		LateBidRatio:      agg.LateBidRatio,
		AvgReactionTime:   agg.AvgReactionTime,
	}
}

// classifyBidder labels a profile (or a cluster aggregate) with the coarse
// behavioral bucket the strategy layers reason about.
func classifyBidder(p BidderProfile) string {
	switch {
	case p.AvgReactionTime > 0 && p.AvgReactionTime <= 2:
		return models.ClusterBot
	case p.LateBidRatio > 0.7:
		return models.ClusterSniper
	case p.TotalAuctions >= 200 && p.WinRate >= 0.6:
		return models.ClusterCorporate
	case p.AggressionScore >= 7:
		return models.ClusterAggressive
	default:
		return models.ClusterCasual
	}
}

// unknownBidder is neutral in the win-probability terms: zero opponent win
// rate and a 0.5 fold probability contribute nothing either way.
func unknownBidder() models.BidderIntel {
	return models.BidderIntel{
		Found:             false,
		BehavioralCluster: models.ClusterUnknown,
		FoldProbability:   0.5,
	}
}

// LookupDomain resolves price statistics through the fallback chain
// exact name > TLD pattern > value tier > table average. Confidence is
// attenuated by sample size and capped at 0.75 for anything below exact.
func (t *Tables) LookupDomain(name string, estimatedValue float64) models.DomainIntel {
	if d, ok := t.Domains[strings.ToLower(name)]; ok {
		return domainIntelFrom([]DomainStats{d}, models.MatchExact)
	}

	if tld := tldOf(name); tld != "" {
		var rows []DomainStats
		for _, d := range t.Domains {
			if tldOf(d.Domain) == tld {
				rows = append(rows, d)
			}
		}
		if len(rows) > 0 {
			return domainIntelFrom(rows, models.MatchTLDPattern)
		}
	}

	if rows := t.valueTierRows(estimatedValue); len(rows) > 0 {
		return domainIntelFrom(rows, models.MatchValueTier)
	}

	if len(t.Domains) > 0 {
		rows := make([]DomainStats, 0, len(t.Domains))
		for _, d := range t.Domains {
			rows = append(rows, d)
		}
		return domainIntelFrom(rows, models.MatchPlatformAvg)
	}

	return models.DomainIntel{MatchType: models.MatchNone}
}

// valueTierRows selects domains whose typical final price lands within ±30%
// of the estimated value.
func (t *Tables) valueTierRows(estimatedValue float64) []DomainStats {
	if estimatedValue <= 0 {
		return nil
	}
	lo, hi := estimatedValue*0.7, estimatedValue*1.3
	var rows []DomainStats
	for _, d := range t.Domains {
		if d.AvgFinalPrice >= lo && d.AvgFinalPrice <= hi {
			rows = append(rows, d)
		}
	}
	return rows
}

// domainIntelFrom aggregates rows weighted by sample size.
func domainIntelFrom(rows []DomainStats, matchType string) models.DomainIntel {
	var total int
	for _, r := range rows {
		if r.SampleSize > 0 {
			total += r.SampleSize
		}
	}

	var out models.DomainIntel
	out.MatchType = matchType
	if total == 0 {
		// Rows without sample counts still average evenly.
		for _, r := range rows {
			out.AvgFinalPrice += r.AvgFinalPrice
			out.Volatility += r.Volatility
			out.Percentiles.P25 += r.P25
			out.Percentiles.P50 += r.P50
			out.Percentiles.P75 += r.P75
			out.Percentiles.P90 += r.P90
		}
		n := float64(len(rows))
		out.AvgFinalPrice /= n
		out.Volatility /= n
		out.Percentiles.P25 /= n
		out.Percentiles.P50 /= n
		out.Percentiles.P75 /= n
		out.Percentiles.P90 /= n
		return out
	}

	w := float64(total)
	for _, r := range rows {
		f := float64(r.SampleSize) / w
		out.AvgFinalPrice += r.AvgFinalPrice * f
		out.Volatility += r.Volatility * f
		out.Percentiles.P25 += r.P25 * f
		out.Percentiles.P50 += r.P50 * f
		out.Percentiles.P75 += r.P75 * f
		out.Percentiles.P90 += r.P90 * f
	}
	out.SampleSize = total
	out.Confidence = confidenceFor(matchType, total)
	return out
}

func confidenceFor(matchType string, sampleSize int) float64 {
	c := math.Sqrt(float64(sampleSize) / 50.0)
	limit := 0.75
	if matchType == models.MatchExact {
		limit = 1.0
	}
	if c > limit {
		return limit
	}
	return c
}

// LookupArchetype classifies the platform's aggregate behavior. Unknown
// platforms yield an unknown escalation speed with every flag off.
func (t *Tables) LookupArchetype(platform string) models.ArchetypeIntel {
	a, ok := t.Archetypes[platform]
	if !ok {
		return models.ArchetypeIntel{EscalationSpeed: "unknown"}
	}

	speed := "moderate"
	if a.AvgBidJump < 50 {
		speed = "slow"
	} else if a.AvgBidJump > 200 {
		speed = "fast"
	}
	return models.ArchetypeIntel{
		AvgLateBidRatio: a.AvgLateBidRatio,
		AvgBidJump:      a.AvgBidJump,
		AvgDurationS:    a.AvgDurationS,
		EscalationSpeed: speed,
		SniperDominated: a.AvgLateBidRatio > 0.7,
		ProxyDriven:     a.AvgLateBidRatio < 0.3,
	}
}

func tldOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
