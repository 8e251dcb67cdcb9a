package intel

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"domainbid/internal/config"
	"domainbid/internal/models"
	"domainbid/internal/repository"
)

// ProfileSource lists history-learned opponent profiles for snapshot merging.
type ProfileSource interface {
	ListOpponentProfiles(ctx context.Context, params repository.ListOpponentProfilesParams) ([]models.OpponentProfile, error)
}

// Service owns the current statistics snapshot and answers enrichment queries
// against it. Reload builds a fresh snapshot and swaps it in under the lock;
// Enrich is pure given the snapshot it reads.
type Service struct {
	cfg      config.IntelligenceConfig
	profiles ProfileSource
	logger   *zap.Logger

	mu     sync.RWMutex
	tables *Tables
}

func NewService(cfg config.IntelligenceConfig, profiles ProfileSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, profiles: profiles, logger: logger, tables: NewTables()}
}

// Reload reads the table directory and publishes a new snapshot. Readers keep
// the previous snapshot until the swap, so enrichment never observes a
// half-loaded state. An opponent-profile merge failure downgrades to a warning.
func (s *Service) Reload(ctx context.Context) error {
	t, err := LoadDir(s.cfg.Dir)
	if err != nil {
		return err
	}

	if s.cfg.MergeOpponentProfiles && s.profiles != nil {
		profiles, err := s.profiles.ListOpponentProfiles(ctx, repository.ListOpponentProfilesParams{Limit: 500})
		if err != nil {
			s.logger.Warn("opponent profile merge skipped", zap.Error(err))
		} else if merged := t.MergeOpponentProfiles(profiles); merged > 0 {
			s.logger.Debug("opponent profiles merged", zap.Int("merged", merged))
		}
	}

	s.mu.Lock()
	s.tables = t
	s.mu.Unlock()

	s.logger.Info("intelligence tables loaded",
		zap.String("dir", s.cfg.Dir),
		zap.Int("bidders", len(t.Bidders)),
		zap.Int("domains", len(t.Domains)),
		zap.Int("archetypes", len(t.Archetypes)),
		zap.Int("skipped_rows", t.SkippedRows))
	return nil
}

func (s *Service) snapshot() *Tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables
}

// Stats describes the current snapshot for health checks and the preview API.
type Stats struct {
	Bidders     int       `json:"bidders"`
	Domains     int       `json:"domains"`
	Archetypes  int       `json:"archetypes"`
	SkippedRows int       `json:"skipped_rows"`
	LoadedAt    time.Time `json:"loaded_at"`
}

func (s *Service) Stats() Stats {
	t := s.snapshot()
	if t == nil {
		return Stats{}
	}
	return Stats{
		Bidders:     len(t.Bidders),
		Domains:     len(t.Domains),
		Archetypes:  len(t.Archetypes),
		SkippedRows: t.SkippedRows,
		LoadedAt:    t.LoadedAt,
	}
}

// Loaded reports whether a snapshot with any data has been published.
func (s *Service) Loaded() bool {
	t := s.snapshot()
	return t != nil && !t.LoadedAt.IsZero()
}

// Enrich resolves everything the strategy layers want to know about one
// auction. It never errors: lookup misses surface as unknown fields and the
// derived scores degrade to their neutral terms.
func (s *Service) Enrich(auction models.AuctionContext) models.MarketIntelligence {
	t := s.snapshot()
	if t == nil {
		t = NewTables()
	}

	aggTol := s.cfg.ClusterAggressionTol
	if aggTol <= 0 {
		aggTol = 2
	}
	reactTol := s.cfg.ClusterReactionTolS
	if reactTol <= 0 {
		reactTol = 60
	}
	minSamples := s.cfg.ClusterMinSamples
	if minSamples <= 0 {
		minSamples = 5
	}

	value := auction.EstimatedValue.InexactFloat64()
	budget := auction.BudgetAvailable.InexactFloat64()
	safeMax := models.SafeMaxFor(auction.EstimatedValue).InexactFloat64()

	bidder := t.LookupBidder(BidderQuery{
		BidderID:        auction.LastBidderID,
		AggressionScore: auction.BidderAnalysis.AggressionScore,
		ReactionTimeS:   auction.BidderAnalysis.ReactionTimeAvg,
	}, aggTol, reactTol, minSamples)
	domain := t.LookupDomain(auction.Domain, value)
	archetype := t.LookupArchetype(auction.Platform)

	winProb := winProbability(auction.NumBidders, bidder, domain, budget, safeMax)

	tierMean := 0.0
	if rows := t.valueTierRows(value); len(rows) > 0 {
		var sum float64
		for _, r := range rows {
			sum += r.AvgFinalPrice
		}
		tierMean = sum / float64(len(rows))
	}
	ev := expectedValue(value, domain, tierMean, winProb)

	score := resourceScore(winProb, ev.ExpectedMargin, ev.ROI)
	high := s.cfg.PriorityHighCutoff
	if high <= 0 {
		high = 1.0
	}
	medium := s.cfg.PriorityMediumCutoff
	if medium <= 0 {
		medium = 0.5
	}

	return models.MarketIntelligence{
		Bidder:           bidder,
		Domain:           domain,
		Archetype:        archetype,
		WinProbability:   winProb,
		EV:               ev,
		ResourceScore:    score,
		ResourcePriority: priorityFor(score, high, medium),
	}
}
