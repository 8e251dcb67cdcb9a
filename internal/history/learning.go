package history

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"domainbid/internal/config"
	"domainbid/internal/models"
	"domainbid/internal/repository"
)

// Learner is the read side of history: it turns persisted outcomes into the
// context block the reasoner sees and into the advisory aggressiveness knob.
type Learner struct {
	Store  repository.HistoryReader
	Cfg    config.HistoryConfig
	Logger *zap.Logger
}

// ContextFor summarizes history relevant to one auction: outcomes on the same
// platform within the value window, the best strategy for the slot, and the
// rounds already played in this thread. Read failures degrade to an empty
// context; a decision never waits on history being healthy.
func (l *Learner) ContextFor(ctx context.Context, auction models.AuctionContext) models.HistoricalContext {
	var out models.HistoricalContext
	if l == nil || l.Store == nil {
		return out
	}

	window := l.Cfg.SimilarWindowPct
	if window <= 0 {
		window = 0.30
	}
	limit := l.Cfg.SimilarLimit
	if limit <= 0 {
		limit = 20
	}

	outcomes, err := l.Store.ListSimilarOutcomes(ctx, repository.SimilarOutcomesParams{
		Platform: auction.Platform,
		ValueMin: auction.EstimatedValue.Mul(decimal.NewFromFloat(1 - window)),
		ValueMax: auction.EstimatedValue.Mul(decimal.NewFromFloat(1 + window)),
		Limit:    limit,
	})
	if err != nil {
		l.warn("similar outcome lookup failed", auction, err)
	} else if len(outcomes) > 0 {
		wins := 0
		sum := 0.0
		for _, o := range outcomes {
			if o.Won {
				wins++
			}
			sum += o.FinalPrice.InexactFloat64()
		}
		out.SimilarCount = len(outcomes)
		out.SimilarWinRate = float64(wins) / float64(len(outcomes))
		out.SimilarAvgPrice = sum / float64(len(outcomes))
	}

	best, err := l.Store.BestStrategyPerformance(ctx, auction.Platform,
		models.TierForValue(auction.EstimatedValue), l.minSamples())
	if err != nil {
		l.warn("best strategy lookup failed", auction, err)
	} else if best != nil {
		out.BestStrategy = best.Strategy
		out.BestStrategyWinRate = best.WinRate()
		out.BestStrategySamples = best.TotalUses
	}

	if auction.ThreadID != "" {
		roundLimit := l.Cfg.ThreadRoundLimit
		if roundLimit <= 0 {
			roundLimit = 10
		}
		rounds, err := l.Store.ListRoundsByThread(ctx, auction.ThreadID, roundLimit)
		if err != nil {
			l.warn("thread round lookup failed", auction, err)
		} else {
			for _, rd := range rounds {
				out.ThreadRounds = append(out.ThreadRounds, models.ThreadRoundSummary{
					RoundNumber: rd.RoundNumber,
					Strategy:    rd.Strategy,
					Amount:      rd.Amount,
					Result:      rd.Result,
				})
			}
		}
	}

	return out
}

// SuggestAggressiveness maps the slot's historical win rate onto an advisory
// posture in [0.55, 0.80]: winning slots justify leaning in, losing slots pull
// back toward caution. Advisory only; no pipeline stage consumes it.
func (l *Learner) SuggestAggressiveness(ctx context.Context, platform, valueTier string) (float64, *models.StrategyPerformance) {
	const base = 0.70
	if l == nil || l.Store == nil {
		return base, nil
	}

	best, err := l.Store.BestStrategyPerformance(ctx, platform, valueTier, l.minSamples())
	if err != nil || best == nil {
		return base, nil
	}

	v := base + (best.WinRate()-0.5)*0.3
	if v < 0.55 {
		v = 0.55
	}
	if v > 0.80 {
		v = 0.80
	}
	return v, best
}

func (l *Learner) minSamples() int64 {
	if l.Cfg.MinSamples > 0 {
		return l.Cfg.MinSamples
	}
	return 5
}

func (l *Learner) warn(msg string, auction models.AuctionContext, err error) {
	if l.Logger != nil {
		l.Logger.Warn(msg, zap.String("domain", auction.Domain), zap.Error(err))
	}
}
