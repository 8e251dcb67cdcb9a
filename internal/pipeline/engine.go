// Package pipeline chains the decision stages into one Decide call: enrich
// with market intelligence, run the safety gate, ask the reasoner, validate
// its answer or fall back to the rule selector, compute proxy mechanics, and
// compose the final decision. Decide never returns an error; every failure
// mode degrades to a concrete FinalDecision with a decision_source that names
// the layer that answered.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"domainbid/internal/config"
	"domainbid/internal/history"
	"domainbid/internal/intel"
	"domainbid/internal/models"
	"domainbid/internal/proxy"
	"domainbid/internal/reasoner"
	"domainbid/internal/rules"
	"domainbid/internal/safety"
	"domainbid/internal/validator"
)

// AuditSink persists one DecisionLog per Decide call.
type AuditSink interface {
	InsertDecisionLog(ctx context.Context, item *models.DecisionLog) error
}

// Publisher pushes finished decisions to live subscribers.
type Publisher interface {
	Publish(dec models.FinalDecision)
}

// Engine owns the stage ordering. Safety, Validator, Rules and Proxy are
// required; Reasoner, Learner, Audit and Feed may be nil and the pipeline
// degrades around them.
type Engine struct {
	Intel     *intel.Service
	Safety    *safety.Gate
	Reasoner  *reasoner.Adapter
	Validator *validator.Validator
	Rules     *rules.Selector
	Proxy     *proxy.Calculator
	Learner   *history.Learner

	Audit  AuditSink
	Feed   Publisher
	Logger *zap.Logger
	Cfg    config.EngineConfig

	// ReasonerTimeout bounds a single reasoner call inside the overall
	// deadline. Zero means the call inherits the caller's deadline only.
	ReasonerTimeout time.Duration

	total    atomic.Int64
	byLLM    atomic.Int64
	byRules  atomic.Int64
	bySafety atomic.Int64
	bySystem atomic.Int64
}

// Counters reports how many decisions each layer has answered since start.
type Counters struct {
	Total         int64 `json:"total"`
	LLM           int64 `json:"llm"`
	RulesFallback int64 `json:"rules_fallback"`
	SafetyBlock   int64 `json:"safety_block"`
	SystemError   int64 `json:"system_error"`
}

// Decide runs the full pipeline for one auction snapshot. Only the reasoner
// call and history reads observe ctx; the deterministic stages always finish.
// The audit write and feed publish happen after the decision is sealed and
// never delay the caller.
func (e *Engine) Decide(ctx context.Context, auction models.AuctionContext) models.FinalDecision {
	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		timeout := e.Cfg.DecideTimeout
		if timeout <= 0 {
			timeout = 25 * time.Second
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	final, mi := e.run(ctx, auction)
	final.ElapsedMs = time.Since(start).Milliseconds()

	e.count(final.DecisionSource)
	e.logger().Info("decision",
		zap.String("domain", final.Domain),
		zap.String("platform", final.Platform),
		zap.String("strategy", final.Strategy),
		zap.String("source", final.DecisionSource),
		zap.String("amount", final.RecommendedBidAmount.StringFixed(2)),
		zap.Float64("confidence", final.Confidence),
		zap.Int64("elapsed_ms", final.ElapsedMs))

	e.persist(auction, mi, final)
	if e.Feed != nil {
		e.Feed.Publish(final)
	}
	return final
}

// run executes the stages and converts any panic into a system_error
// do-not-bid so a misbehaving stage cannot take the process down.
func (e *Engine) run(ctx context.Context, auction models.AuctionContext) (final models.FinalDecision, mi models.MarketIntelligence) {
	defer func() {
		if r := recover(); r != nil {
			e.logger().Error("decision pipeline panic",
				zap.String("domain", auction.Domain),
				zap.Any("panic", r),
				zap.Stack("stack"))
			final = e.systemError(auction, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := auction.Validate(); err != nil {
		return e.systemError(auction, "invalid auction context: "+err.Error()), mi
	}

	mi = e.Intel.Enrich(auction)

	gate := e.Safety.Check(auction)
	if gate.Blocked {
		final = e.compose(auction, models.StrategyDecision{
			Strategy:   models.StrategyDoNotBid,
			Confidence: 0.95,
			RiskLevel:  models.RiskHigh,
			Reasoning:  gate.Reason,
		}, nil, models.SourceSafetyBlock, gate.Checks)
		final.BlockReason = gate.Reason
		final.WinProb = mi.WinProbability
		return final, mi
	}

	var hist models.HistoricalContext
	if e.Learner != nil {
		hist = e.Learner.ContextFor(ctx, auction)
	}

	dec, source, vreason := e.propose(ctx, auction, mi, hist)

	p := e.Proxy.Compute(auction)
	if p.ProxyAction == models.ProxyActionAcceptLoss {
		proxy.OverrideForLoss(&dec, p)
	}

	final = e.compose(auction, dec, &p, source, gate.Checks)
	final.ValidatorReason = vreason
	final.WinProb = mi.WinProbability
	return final, mi
}

// propose asks the reasoner for a strategy and validates the answer. A
// missing reasoner, a failed call, or a rejected decision all land on the
// rule selector; the validator never sees rule output.
func (e *Engine) propose(ctx context.Context, auction models.AuctionContext, mi models.MarketIntelligence, hist models.HistoricalContext) (models.StrategyDecision, string, string) {
	if e.Reasoner.Available() {
		rctx := ctx
		if e.ReasonerTimeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(ctx, e.ReasonerTimeout)
			defer cancel()
		}
		if dec, ok := e.Reasoner.Propose(rctx, auction, mi, hist); ok {
			valid, reason := e.Validator.Validate(*dec, auction)
			if valid {
				return *dec, models.SourceLLM, ""
			}
			e.logger().Info("reasoner decision rejected",
				zap.String("domain", auction.Domain),
				zap.String("reason", reason))
			return e.Rules.Select(auction, mi), models.SourceRulesFallback, reason
		}
	}
	return e.Rules.Select(auction, mi), models.SourceRulesFallback, ""
}

func (e *Engine) compose(auction models.AuctionContext, dec models.StrategyDecision, p *models.ProxyDecision, source string, checks []models.SafetyCheck) models.FinalDecision {
	return models.FinalDecision{
		Domain:               auction.Domain,
		Platform:             auction.Platform,
		ThreadID:             auction.ThreadID,
		Strategy:             dec.Strategy,
		RecommendedBidAmount: dec.RecommendedBidAmount,
		Confidence:           dec.Confidence,
		RiskLevel:            dec.RiskLevel,
		Reasoning:            dec.Reasoning,
		Proxy:                p,
		DecisionSource:       source,
		SafetyChecks:         checks,
		ValueTier:            models.TierForValue(auction.EstimatedValue),
	}
}

func (e *Engine) systemError(auction models.AuctionContext, reason string) models.FinalDecision {
	return models.FinalDecision{
		Domain:               auction.Domain,
		Platform:             auction.Platform,
		ThreadID:             auction.ThreadID,
		Strategy:             models.StrategyDoNotBid,
		RecommendedBidAmount: decimal.Zero,
		RiskLevel:            models.RiskHigh,
		Reasoning:            reason,
		DecisionSource:       models.SourceSystemError,
		BlockReason:          reason,
		ValueTier:            models.TierForValue(auction.EstimatedValue),
	}
}

// persist writes the audit record on a detached context so a slow or dead
// store cannot hold up the reply.
func (e *Engine) persist(auction models.AuctionContext, mi models.MarketIntelligence, final models.FinalDecision) {
	if e.Audit == nil {
		return
	}
	item := &models.DecisionLog{
		Domain:         final.Domain,
		Platform:       final.Platform,
		ThreadID:       final.ThreadID,
		DecisionSource: final.DecisionSource,
		Strategy:       final.Strategy,
		Amount:         final.RecommendedBidAmount,
		Confidence:     final.Confidence,
		RiskLevel:      final.RiskLevel,
		BlockReason:    final.BlockReason,
		ElapsedMs:      final.ElapsedMs,
	}
	if final.Proxy != nil {
		item.ProxyAction = final.Proxy.ProxyAction
	}
	if b, err := json.Marshal(auction); err == nil {
		item.ContextSnapshot = b
	}
	if b, err := json.Marshal(mi); err == nil {
		item.IntelSnapshot = b
	}
	if len(final.SafetyChecks) > 0 {
		if b, err := json.Marshal(final.SafetyChecks); err == nil {
			item.Checks = b
		}
	}

	timeout := e.Cfg.AuditWriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := e.Audit.InsertDecisionLog(ctx, item); err != nil {
			e.logger().Warn("decision log write failed",
				zap.String("domain", item.Domain),
				zap.Error(err))
		}
	}()
}

func (e *Engine) count(source string) {
	e.total.Add(1)
	switch source {
	case models.SourceLLM:
		e.byLLM.Add(1)
	case models.SourceRulesFallback:
		e.byRules.Add(1)
	case models.SourceSafetyBlock:
		e.bySafety.Add(1)
	case models.SourceSystemError:
		e.bySystem.Add(1)
	}
}

// Stats returns the per-source decision counts since process start.
func (e *Engine) Stats() Counters {
	return Counters{
		Total:         e.total.Load(),
		LLM:           e.byLLM.Load(),
		RulesFallback: e.byRules.Load(),
		SafetyBlock:   e.bySafety.Load(),
		SystemError:   e.bySystem.Load(),
	}
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}
