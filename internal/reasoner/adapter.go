package reasoner

import (
	"context"

	"go.uber.org/zap"

	"domainbid/internal/models"
)

// Adapter wraps a Client with prompt construction and output parsing. It
// reports ok=false for every failure mode (no client, transport error,
// timeout, unparseable output) and never returns an error: the pipeline's
// answer to a silent reasoner is the rule selector, not a retry.
type Adapter struct {
	client Client
	logger *zap.Logger
}

func NewAdapter(client Client, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{client: client, logger: logger}
}

// Available reports whether a backing client is configured.
func (a *Adapter) Available() bool {
	return a != nil && a.client != nil
}

// Propose asks the reasoner for a strategy. One attempt only.
func (a *Adapter) Propose(ctx context.Context, auction models.AuctionContext, intel models.MarketIntelligence, hist models.HistoricalContext) (*models.StrategyDecision, bool) {
	if !a.Available() {
		return nil, false
	}

	raw, err := a.client.Reason(ctx, SystemPrompt(), UserPrompt(auction, intel, hist))
	if err != nil {
		a.logger.Warn("reasoner call failed",
			zap.String("domain", auction.Domain),
			zap.Error(err))
		return nil, false
	}

	dec, err := ParseDecision(raw)
	if err != nil {
		a.logger.Warn("reasoner output rejected",
			zap.String("domain", auction.Domain),
			zap.Error(err))
		return nil, false
	}

	a.logger.Debug("reasoner proposed",
		zap.String("domain", auction.Domain),
		zap.String("strategy", dec.Strategy),
		zap.Float64("confidence", dec.Confidence))
	return dec, true
}
