package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"domainbid/internal/models"
)

// Repository is the unified persistence surface for the decision engine.
// The pipeline itself only sees the narrow HistoryReader/HistoryWriter views;
// handlers and jobs use the full interface.
type Repository interface {
	HistoryReader
	HistoryWriter

	// Decision audit log.
	InsertDecisionLog(ctx context.Context, item *models.DecisionLog) error
	GetDecisionLogByID(ctx context.Context, id uint64) (*models.DecisionLog, error)
	ListDecisionLogs(ctx context.Context, params ListDecisionLogsParams) ([]models.DecisionLog, error)
	CountDecisionLogs(ctx context.Context, params ListDecisionLogsParams) (int64, error)
	DeleteDecisionLogsBefore(ctx context.Context, before time.Time) (int64, error)

	// Admin listings.
	ListAuctionOutcomes(ctx context.Context, params ListAuctionOutcomesParams) ([]models.AuctionOutcome, error)
	CountAuctionOutcomes(ctx context.Context, params ListAuctionOutcomesParams) (int64, error)
	ListStrategyPerformance(ctx context.Context, params ListStrategyPerformanceParams) ([]models.StrategyPerformance, error)
	ListOpponentProfiles(ctx context.Context, params ListOpponentProfilesParams) ([]models.OpponentProfile, error)
}

// HistoryReader is the read-only view handed to intelligence and the prompt
// builder. Keeping it separate from the writer breaks the intel/history cycle.
type HistoryReader interface {
	ListSimilarOutcomes(ctx context.Context, params SimilarOutcomesParams) ([]models.AuctionOutcome, error)
	GetStrategyPerformance(ctx context.Context, strategy, platform, valueTier string) (*models.StrategyPerformance, error)
	BestStrategyPerformance(ctx context.Context, platform, valueTier string, minSamples int64) (*models.StrategyPerformance, error)
	ListRoundsByThread(ctx context.Context, threadID string, limit int) ([]models.AuctionRound, error)
}

// HistoryWriter is the write-only view used by the recorder.
type HistoryWriter interface {
	UpsertAuctionOutcome(ctx context.Context, item *models.AuctionOutcome) error
	GetAuctionOutcomeByAuctionID(ctx context.Context, auctionID string) (*models.AuctionOutcome, error)
	InsertAuctionRound(ctx context.Context, item *models.AuctionRound) error
	CountRoundsByThread(ctx context.Context, threadID string) (int64, error)
	BumpStrategyPerformance(ctx context.Context, params BumpStrategyPerformanceParams) error
	RecordOpponentEncounter(ctx context.Context, params OpponentEncounterParams) error
}

// SimilarOutcomesParams selects recent outcomes near a value on one platform.
type SimilarOutcomesParams struct {
	Platform string
	ValueMin decimal.Decimal
	ValueMax decimal.Decimal
	Limit    int
}

// BumpStrategyPerformanceParams is one aggregate increment. Profit is added
// only when HasProfit is set so losses do not drag the sum with zeros.
type BumpStrategyPerformanceParams struct {
	Strategy  string
	Platform  string
	ValueTier string
	Won       bool
	Profit    decimal.Decimal
	HasProfit bool
}

// OpponentEncounterParams is one bidder sighting from a recorded outcome.
type OpponentEncounterParams struct {
	BidderID   string
	WeWon      bool
	FinalPrice float64
	SeenAt     time.Time
}

type ListAuctionOutcomesParams struct {
	Limit  int
	Offset int

	Platform  *string
	ValueTier *string
	Strategy  *string
	Won       *bool
	Since     *time.Time

	OrderBy string
	Asc     *bool
}

type ListStrategyPerformanceParams struct {
	Limit  int
	Offset int

	Strategy   *string
	Platform   *string
	ValueTier  *string
	MinSamples *int64

	OrderBy string
	Asc     *bool
}

type ListOpponentProfilesParams struct {
	Limit  int
	Offset int

	BidderID *string

	OrderBy string
	Asc     *bool
}

type ListDecisionLogsParams struct {
	Limit  int
	Offset int

	Domain         *string
	Platform       *string
	ThreadID       *string
	DecisionSource *string
	Since          *time.Time

	OrderBy string
	Asc     *bool
}
