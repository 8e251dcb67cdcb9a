package history

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"domainbid/internal/models"
	"domainbid/internal/repository"
)

// StatsSource is the slice of the repository the stats view reads.
type StatsSource interface {
	CountAuctionOutcomes(ctx context.Context, params repository.ListAuctionOutcomesParams) (int64, error)
	CountDecisionLogs(ctx context.Context, params repository.ListDecisionLogsParams) (int64, error)
	ListStrategyPerformance(ctx context.Context, params repository.ListStrategyPerformanceParams) ([]models.StrategyPerformance, error)
}

// StrategyStanding is one aggregate row of the stats snapshot.
type StrategyStanding struct {
	Strategy    string  `json:"strategy"`
	Platform    string  `json:"platform"`
	ValueTier   string  `json:"value_tier"`
	TotalUses   int64   `json:"total_uses"`
	Wins        int64   `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	TotalProfit string  `json:"total_profit"`
}

// Snapshot is the periodically refreshed stats view served by the API.
type Snapshot struct {
	RefreshedAt     time.Time          `json:"refreshed_at"`
	OutcomesTotal   int64              `json:"outcomes_total"`
	OutcomesWon     int64              `json:"outcomes_won"`
	DecisionsLogged int64              `json:"decisions_logged"`
	TopStrategies   []StrategyStanding `json:"top_strategies"`
}

// StatsView keeps an in-memory stats snapshot so the API never queries
// aggregates on the hot path. RunOnce rebuilds it; Run loops on an interval.
type StatsView struct {
	Repo   StatsSource
	Logger *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

func (s *StatsView) Run(ctx context.Context, interval time.Duration) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if err := s.RunOnce(ctx); err != nil && s.Logger != nil {
			s.Logger.Warn("stats refresh failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (s *StatsView) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}

	total, err := s.Repo.CountAuctionOutcomes(ctx, repository.ListAuctionOutcomesParams{})
	if err != nil {
		return err
	}
	won := true
	wins, err := s.Repo.CountAuctionOutcomes(ctx, repository.ListAuctionOutcomesParams{Won: &won})
	if err != nil {
		return err
	}
	logged, err := s.Repo.CountDecisionLogs(ctx, repository.ListDecisionLogsParams{})
	if err != nil {
		return err
	}

	asc := false
	perf, err := s.Repo.ListStrategyPerformance(ctx, repository.ListStrategyPerformanceParams{
		Limit:   10,
		OrderBy: "total_uses",
		Asc:     &asc,
	})
	if err != nil {
		return err
	}

	snap := Snapshot{
		RefreshedAt:     time.Now().UTC(),
		OutcomesTotal:   total,
		OutcomesWon:     wins,
		DecisionsLogged: logged,
	}
	for _, p := range perf {
		snap.TopStrategies = append(snap.TopStrategies, StrategyStanding{
			Strategy:    p.Strategy,
			Platform:    p.Platform,
			ValueTier:   p.ValueTier,
			TotalUses:   p.TotalUses,
			Wins:        p.Wins,
			WinRate:     p.WinRate(),
			TotalProfit: p.TotalProfit.StringFixed(2),
		})
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Snapshot returns the last refreshed view; zero value before the first run.
func (s *StatsView) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
