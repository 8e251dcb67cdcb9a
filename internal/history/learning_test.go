package history

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"domainbid/internal/config"
	"domainbid/internal/models"
)

func learnerAuction() models.AuctionContext {
	return models.AuctionContext{
		Domain:          "crypto.com",
		Platform:        models.PlatformGoDaddy,
		EstimatedValue:  decimal.NewFromInt(1000),
		BudgetAvailable: decimal.NewFromInt(5000),
		ThreadID:        "thread-9",
	}
}

func TestContextForSummaries(t *testing.T) {
	store := &stubStore{
		similar: []models.AuctionOutcome{
			{Won: true, FinalPrice: decimal.NewFromInt(600)},
			{Won: false, FinalPrice: decimal.NewFromInt(800)},
			{Won: true, FinalPrice: decimal.NewFromInt(700)},
			{Won: false, FinalPrice: decimal.NewFromInt(900)},
		},
		best: &models.StrategyPerformance{
			Strategy: models.StrategyLastMinuteSnipe, TotalUses: 10, Wins: 7,
		},
		rounds: []models.AuctionRound{
			{RoundNumber: 1, Strategy: models.StrategyProxyMax, Amount: decimal.NewFromInt(200), Result: models.RoundOutbid},
			{RoundNumber: 2, Strategy: models.StrategyIncrementalTest, Amount: decimal.NewFromInt(250), Result: models.RoundPending},
		},
	}
	l := &Learner{Store: store}

	hist := l.ContextFor(context.Background(), learnerAuction())
	if hist.SimilarCount != 4 {
		t.Fatalf("similar count = %d, want 4", hist.SimilarCount)
	}
	if hist.SimilarWinRate != 0.5 {
		t.Fatalf("similar win rate = %v, want 0.5", hist.SimilarWinRate)
	}
	if hist.SimilarAvgPrice != 750 {
		t.Fatalf("similar avg price = %v, want 750", hist.SimilarAvgPrice)
	}
	if hist.BestStrategy != models.StrategyLastMinuteSnipe || hist.BestStrategySamples != 10 {
		t.Fatalf("best = %s/%d", hist.BestStrategy, hist.BestStrategySamples)
	}
	if math.Abs(hist.BestStrategyWinRate-0.7) > 1e-9 {
		t.Fatalf("best win rate = %v, want 0.7", hist.BestStrategyWinRate)
	}
	if len(hist.ThreadRounds) != 2 || hist.ThreadRounds[0].RoundNumber != 1 {
		t.Fatalf("thread rounds = %+v", hist.ThreadRounds)
	}

	// Default window is ±30% of the estimated value.
	if !store.lastSimilar.ValueMin.Equal(decimal.NewFromInt(700)) ||
		!store.lastSimilar.ValueMax.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("value window = [%s, %s], want [700, 1300]",
			store.lastSimilar.ValueMin, store.lastSimilar.ValueMax)
	}
}

func TestContextForDegradesOnErrors(t *testing.T) {
	store := &stubStore{
		similarErr: errors.New("db down"),
		bestErr:    errors.New("db down"),
		roundsErr:  errors.New("db down"),
	}
	l := &Learner{Store: store}

	hist := l.ContextFor(context.Background(), learnerAuction())
	if !hist.Empty() {
		t.Fatalf("expected empty context on store errors, got %+v", hist)
	}
}

func TestContextForWithoutStore(t *testing.T) {
	var l *Learner
	if !l.ContextFor(context.Background(), learnerAuction()).Empty() {
		t.Fatalf("nil learner must return an empty context")
	}
}

func TestSuggestAggressiveness(t *testing.T) {
	cases := []struct {
		wins, uses int64
		want       float64
	}{
		{5, 10, 0.70},  // even record stays at base
		{10, 10, 0.80}, // perfect record clamps at the top
		{0, 10, 0.55},  // losing record clamps at the bottom
		{6, 10, 0.73},
	}
	for _, tc := range cases {
		store := &stubStore{best: &models.StrategyPerformance{
			Strategy: models.StrategyProxyMax, TotalUses: tc.uses, Wins: tc.wins,
		}}
		l := &Learner{Store: store, Cfg: config.HistoryConfig{MinSamples: 5}}
		got, best := l.SuggestAggressiveness(context.Background(), models.PlatformGoDaddy, models.TierHigh)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("aggressiveness(%d/%d) = %v, want %v", tc.wins, tc.uses, got, tc.want)
		}
		if best == nil {
			t.Fatalf("expected backing aggregate row")
		}
	}
}

func TestSuggestAggressivenessNoData(t *testing.T) {
	l := &Learner{Store: &stubStore{}}
	got, best := l.SuggestAggressiveness(context.Background(), models.PlatformGoDaddy, models.TierHigh)
	if got != 0.70 || best != nil {
		t.Fatalf("no-data suggestion = %v/%v, want 0.70/nil", got, best)
	}
}
