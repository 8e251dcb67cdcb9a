package handler

import (
	"context"
	"time"

	"domainbid/internal/models"
	"domainbid/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but each handler test reads only a small
// slice of it.
type stubRepo struct {
	outcomes []models.AuctionOutcome
	rounds   []models.AuctionRound
	perf     []models.StrategyPerformance
	logs     []models.DecisionLog
	best     *models.StrategyPerformance

	threadCount int64

	upsertedOutcome *models.AuctionOutcome
	insertedRound   *models.AuctionRound
	bumped          *repository.BumpStrategyPerformanceParams
	encounter       *repository.OpponentEncounterParams
}

func (s *stubRepo) ListSimilarOutcomes(ctx context.Context, params repository.SimilarOutcomesParams) ([]models.AuctionOutcome, error) {
	return s.outcomes, nil
}

func (s *stubRepo) GetStrategyPerformance(ctx context.Context, strategy, platform, valueTier string) (*models.StrategyPerformance, error) {
	return s.best, nil
}

func (s *stubRepo) BestStrategyPerformance(ctx context.Context, platform, valueTier string, minSamples int64) (*models.StrategyPerformance, error) {
	return s.best, nil
}

func (s *stubRepo) ListRoundsByThread(ctx context.Context, threadID string, limit int) ([]models.AuctionRound, error) {
	return s.rounds, nil
}

func (s *stubRepo) UpsertAuctionOutcome(ctx context.Context, item *models.AuctionOutcome) error {
	s.upsertedOutcome = item
	return nil
}

func (s *stubRepo) GetAuctionOutcomeByAuctionID(ctx context.Context, auctionID string) (*models.AuctionOutcome, error) {
	return nil, nil
}

func (s *stubRepo) InsertAuctionRound(ctx context.Context, item *models.AuctionRound) error {
	s.insertedRound = item
	return nil
}

func (s *stubRepo) CountRoundsByThread(ctx context.Context, threadID string) (int64, error) {
	return s.threadCount, nil
}

func (s *stubRepo) BumpStrategyPerformance(ctx context.Context, params repository.BumpStrategyPerformanceParams) error {
	s.bumped = &params
	return nil
}

func (s *stubRepo) RecordOpponentEncounter(ctx context.Context, params repository.OpponentEncounterParams) error {
	s.encounter = &params
	return nil
}

func (s *stubRepo) InsertDecisionLog(ctx context.Context, item *models.DecisionLog) error {
	s.logs = append(s.logs, *item)
	return nil
}

func (s *stubRepo) GetDecisionLogByID(ctx context.Context, id uint64) (*models.DecisionLog, error) {
	for i := range s.logs {
		if s.logs[i].ID == id {
			return &s.logs[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListDecisionLogs(ctx context.Context, params repository.ListDecisionLogsParams) ([]models.DecisionLog, error) {
	return s.logs, nil
}

func (s *stubRepo) CountDecisionLogs(ctx context.Context, params repository.ListDecisionLogsParams) (int64, error) {
	return int64(len(s.logs)), nil
}

func (s *stubRepo) DeleteDecisionLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (s *stubRepo) ListAuctionOutcomes(ctx context.Context, params repository.ListAuctionOutcomesParams) ([]models.AuctionOutcome, error) {
	return s.outcomes, nil
}

func (s *stubRepo) CountAuctionOutcomes(ctx context.Context, params repository.ListAuctionOutcomesParams) (int64, error) {
	return int64(len(s.outcomes)), nil
}

func (s *stubRepo) ListStrategyPerformance(ctx context.Context, params repository.ListStrategyPerformanceParams) ([]models.StrategyPerformance, error) {
	return s.perf, nil
}

func (s *stubRepo) ListOpponentProfiles(ctx context.Context, params repository.ListOpponentProfilesParams) ([]models.OpponentProfile, error) {
	return nil, nil
}
