package models

import "github.com/shopspring/decimal"

// ThreadRoundSummary is one earlier decision round in the same auction thread.
type ThreadRoundSummary struct {
	RoundNumber int             `json:"round_number"`
	Strategy    string          `json:"strategy"`
	Amount      decimal.Decimal `json:"amount"`
	Result      string          `json:"result"`
}

// HistoricalContext is what persisted history contributes to one decision:
// how similar auctions went, which strategy has worked in this slot, and the
// rounds already played in this thread.
type HistoricalContext struct {
	SimilarCount    int     `json:"similar_count"`
	SimilarWinRate  float64 `json:"similar_win_rate"`
	SimilarAvgPrice float64 `json:"similar_avg_price"`

	BestStrategy        string  `json:"best_strategy,omitempty"`
	BestStrategyWinRate float64 `json:"best_strategy_win_rate,omitempty"`
	BestStrategySamples int64   `json:"best_strategy_samples,omitempty"`

	ThreadRounds []ThreadRoundSummary `json:"thread_rounds,omitempty"`
}

// Empty reports whether history found nothing usable for the prompt.
func (h HistoricalContext) Empty() bool {
	return h.SimilarCount == 0 && h.BestStrategy == "" && len(h.ThreadRounds) == 0
}
