package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"domainbid/internal/models"
	"domainbid/internal/repository"
)

// OutcomeReport is the caller's account of one resolved auction.
type OutcomeReport struct {
	AuctionID      string          `json:"auction_id"`
	Domain         string          `json:"domain"`
	Platform       string          `json:"platform"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	OurMaxBid      decimal.Decimal `json:"our_max_bid"`
	Won            bool            `json:"won"`
	StrategyUsed   string          `json:"strategy_used"`
	NumBidders     int             `json:"num_bidders"`
	LastBidderID   string          `json:"last_bidder_id,omitempty"`

	// Context optionally snapshots the final auction state for later analysis.
	Context *models.AuctionContext `json:"context,omitempty"`
}

// RoundReport is one decision round of a thread. RoundNumber 0 means append
// as the next round.
type RoundReport struct {
	ThreadID       string          `json:"thread_id"`
	RoundNumber    int             `json:"round_number,omitempty"`
	Domain         string          `json:"domain"`
	Platform       string          `json:"platform"`
	Strategy       string          `json:"strategy"`
	Amount         decimal.Decimal `json:"amount"`
	Result         string          `json:"result,omitempty"`
	DecisionSource string          `json:"decision_source,omitempty"`
}

// Recorder is the write side of history. It owns the derived fields: value
// tier, profit margin, aggregate increments, opponent encounters.
type Recorder struct {
	Store  repository.HistoryWriter
	Logger *zap.Logger
}

// RecordOutcome persists the resolved auction, bumps the strategy aggregate,
// and notes the opponent encounter. The outcome row failing is the only hard
// error; the derived writes log and continue.
func (r *Recorder) RecordOutcome(ctx context.Context, report OutcomeReport) (*models.AuctionOutcome, error) {
	if r == nil || r.Store == nil {
		return nil, fmt.Errorf("history store not configured")
	}
	if strings.TrimSpace(report.AuctionID) == "" {
		return nil, fmt.Errorf("auction_id is required")
	}
	if strings.TrimSpace(report.Domain) == "" {
		return nil, fmt.Errorf("domain is required")
	}
	platform := models.NormalizePlatform(report.Platform)
	if platform == "" {
		return nil, fmt.Errorf("unsupported platform %q", report.Platform)
	}
	if !models.KnownStrategy(report.StrategyUsed) {
		return nil, fmt.Errorf("unknown strategy %q", report.StrategyUsed)
	}
	if report.FinalPrice.IsNegative() || report.EstimatedValue.IsNegative() {
		return nil, fmt.Errorf("negative price or value")
	}

	tier := models.TierForValue(report.EstimatedValue)

	margin := 0.0
	if report.Won && report.EstimatedValue.IsPositive() {
		margin = report.EstimatedValue.Sub(report.FinalPrice).
			Div(report.EstimatedValue).InexactFloat64()
	}

	outcome := &models.AuctionOutcome{
		AuctionID:      report.AuctionID,
		Domain:         report.Domain,
		Platform:       platform,
		ValueTier:      tier,
		EstimatedValue: report.EstimatedValue,
		FinalPrice:     report.FinalPrice,
		OurMaxBid:      report.OurMaxBid,
		Won:            report.Won,
		ProfitMargin:   margin,
		StrategyUsed:   report.StrategyUsed,
		NumBidders:     report.NumBidders,
		LastBidderID:   report.LastBidderID,
	}
	if report.Context != nil {
		if raw, err := json.Marshal(report.Context); err == nil {
			outcome.ContextSnapshot = raw
		}
	}

	if err := r.Store.UpsertAuctionOutcome(ctx, outcome); err != nil {
		return nil, fmt.Errorf("record outcome: %w", err)
	}

	bump := repository.BumpStrategyPerformanceParams{
		Strategy:  report.StrategyUsed,
		Platform:  platform,
		ValueTier: tier,
		Won:       report.Won,
	}
	if report.Won {
		bump.Profit = report.EstimatedValue.Sub(report.FinalPrice)
		bump.HasProfit = true
	}
	if err := r.Store.BumpStrategyPerformance(ctx, bump); err != nil && r.Logger != nil {
		r.Logger.Warn("strategy aggregate update failed",
			zap.String("auction_id", report.AuctionID), zap.Error(err))
	}

	if report.LastBidderID != "" {
		err := r.Store.RecordOpponentEncounter(ctx, repository.OpponentEncounterParams{
			BidderID:   report.LastBidderID,
			WeWon:      report.Won,
			FinalPrice: report.FinalPrice.InexactFloat64(),
			SeenAt:     time.Now().UTC(),
		})
		if err != nil && r.Logger != nil {
			r.Logger.Warn("opponent encounter update failed",
				zap.String("bidder_id", report.LastBidderID), zap.Error(err))
		}
	}

	return outcome, nil
}

// RecordRound appends one round to a thread. On a replayed (thread, round)
// pair the insert is a no-op apart from refreshing the result.
func (r *Recorder) RecordRound(ctx context.Context, report RoundReport) (*models.AuctionRound, error) {
	if r == nil || r.Store == nil {
		return nil, fmt.Errorf("history store not configured")
	}
	if strings.TrimSpace(report.ThreadID) == "" {
		return nil, fmt.Errorf("thread_id is required")
	}
	if strings.TrimSpace(report.Domain) == "" {
		return nil, fmt.Errorf("domain is required")
	}
	platform := models.NormalizePlatform(report.Platform)
	if platform == "" {
		return nil, fmt.Errorf("unsupported platform %q", report.Platform)
	}
	if !models.KnownStrategy(report.Strategy) {
		return nil, fmt.Errorf("unknown strategy %q", report.Strategy)
	}
	result := report.Result
	if result == "" {
		result = models.RoundPending
	}
	switch result {
	case models.RoundOutbid, models.RoundWon, models.RoundLost, models.RoundPending:
	default:
		return nil, fmt.Errorf("unknown round result %q", report.Result)
	}

	if report.RoundNumber <= 0 {
		n, err := r.Store.CountRoundsByThread(ctx, report.ThreadID)
		if err != nil {
			return nil, fmt.Errorf("count rounds: %w", err)
		}
		report.RoundNumber = int(n) + 1
	}

	round := &models.AuctionRound{
		ThreadID:       report.ThreadID,
		RoundNumber:    report.RoundNumber,
		Domain:         report.Domain,
		Platform:       platform,
		Strategy:       report.Strategy,
		Amount:         report.Amount,
		Result:         result,
		DecisionSource: report.DecisionSource,
	}
	if err := r.Store.InsertAuctionRound(ctx, round); err != nil {
		return nil, fmt.Errorf("record round: %w", err)
	}
	return round, nil
}
