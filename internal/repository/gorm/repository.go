package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"domainbid/internal/models"
	"domainbid/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- Outcomes ---------------------------------------------------------------

func (s *Store) UpsertAuctionOutcome(ctx context.Context, item *models.AuctionOutcome) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.AuctionID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "auction_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"domain",
			"platform",
			"value_tier",
			"estimated_value",
			"final_price",
			"our_max_bid",
			"won",
			"profit_margin",
			"strategy_used",
			"num_bidders",
			"last_bidder_id",
			"context_snapshot",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetAuctionOutcomeByAuctionID(ctx context.Context, auctionID string) (*models.AuctionOutcome, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	auctionID = strings.TrimSpace(auctionID)
	if auctionID == "" {
		return nil, nil
	}
	var item models.AuctionOutcome
	err := s.db.WithContext(ctx).Where("auction_id = ?", auctionID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListAuctionOutcomes(ctx context.Context, params repository.ListAuctionOutcomesParams) ([]models.AuctionOutcome, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.outcomeQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.AuctionOutcome
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountAuctionOutcomes(ctx context.Context, params repository.ListAuctionOutcomesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.outcomeQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) outcomeQuery(ctx context.Context, params repository.ListAuctionOutcomesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.AuctionOutcome{})
	if params.Platform != nil && strings.TrimSpace(*params.Platform) != "" {
		query = query.Where("platform = ?", strings.TrimSpace(*params.Platform))
	}
	if params.ValueTier != nil && strings.TrimSpace(*params.ValueTier) != "" {
		query = query.Where("value_tier = ?", strings.TrimSpace(*params.ValueTier))
	}
	if params.Strategy != nil && strings.TrimSpace(*params.Strategy) != "" {
		query = query.Where("strategy_used = ?", strings.TrimSpace(*params.Strategy))
	}
	if params.Won != nil {
		query = query.Where("won = ?", *params.Won)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) ListSimilarOutcomes(ctx context.Context, params repository.SimilarOutcomesParams) ([]models.AuctionOutcome, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.AuctionOutcome{})
	if strings.TrimSpace(params.Platform) != "" {
		query = query.Where("platform = ?", strings.TrimSpace(params.Platform))
	}
	query = query.
		Where("estimated_value >= ?", params.ValueMin).
		Where("estimated_value <= ?", params.ValueMax).
		Order("created_at desc")
	limit := normalizeLimit(params.Limit, 20)
	var items []models.AuctionOutcome
	if err := query.Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Rounds -----------------------------------------------------------------

func (s *Store) InsertAuctionRound(ctx context.Context, item *models.AuctionRound) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ThreadID) == "" || item.RoundNumber <= 0 {
		return nil
	}
	// Re-reporting a round updates its result; everything else is immutable.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "thread_id"}, {Name: "round_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"result",
			"decision_source",
		}),
	}).Create(item).Error
}

func (s *Store) ListRoundsByThread(ctx context.Context, threadID string, limit int) ([]models.AuctionRound, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	threadID = strings.TrimSpace(threadID)
	if threadID == "" {
		return nil, nil
	}
	limit = normalizeLimit(limit, 50)
	var items []models.AuctionRound
	err := s.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("round_number asc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountRoundsByThread(ctx context.Context, threadID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	threadID = strings.TrimSpace(threadID)
	if threadID == "" {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.AuctionRound{}).
		Where("thread_id = ?", threadID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// --- Strategy performance ---------------------------------------------------

func (s *Store) BumpStrategyPerformance(ctx context.Context, params repository.BumpStrategyPerformanceParams) error {
	if s == nil || s.db == nil {
		return nil
	}
	strategy := strings.TrimSpace(params.Strategy)
	platform := strings.TrimSpace(params.Platform)
	tier := strings.TrimSpace(params.ValueTier)
	if strategy == "" || platform == "" || tier == "" {
		return nil
	}

	now := time.Now().UTC()
	// SQL-side increments so concurrent recorders never lose counts.
	assignments := map[string]interface{}{
		"total_uses": gorm.Expr("strategy_performance.total_uses + 1"),
		"updated_at": now,
	}
	wins := int64(0)
	if params.Won {
		wins = 1
		assignments["wins"] = gorm.Expr("strategy_performance.wins + 1")
	}
	profit := decimal.Zero
	if params.HasProfit {
		profit = params.Profit
		assignments["total_profit"] = gorm.Expr("strategy_performance.total_profit + ?", params.Profit)
	}

	item := &models.StrategyPerformance{
		Strategy:    strategy,
		Platform:    platform,
		ValueTier:   tier,
		TotalUses:   1,
		Wins:        wins,
		TotalProfit: profit,
		UpdatedAt:   now,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "strategy"}, {Name: "platform"}, {Name: "value_tier"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(item).Error
}

func (s *Store) GetStrategyPerformance(ctx context.Context, strategy, platform, valueTier string) (*models.StrategyPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.StrategyPerformance
	err := s.db.WithContext(ctx).
		Where("strategy = ?", strings.TrimSpace(strategy)).
		Where("platform = ?", strings.TrimSpace(platform)).
		Where("value_tier = ?", strings.TrimSpace(valueTier)).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) BestStrategyPerformance(ctx context.Context, platform, valueTier string, minSamples int64) (*models.StrategyPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if minSamples < 1 {
		minSamples = 1
	}
	var item models.StrategyPerformance
	err := s.db.WithContext(ctx).
		Where("platform = ?", strings.TrimSpace(platform)).
		Where("value_tier = ?", strings.TrimSpace(valueTier)).
		Where("total_uses >= ?", minSamples).
		Order("(wins::float / total_uses) desc").
		Order("total_uses desc").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListStrategyPerformance(ctx context.Context, params repository.ListStrategyPerformanceParams) ([]models.StrategyPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.StrategyPerformance{})
	if params.Strategy != nil && strings.TrimSpace(*params.Strategy) != "" {
		query = query.Where("strategy = ?", strings.TrimSpace(*params.Strategy))
	}
	if params.Platform != nil && strings.TrimSpace(*params.Platform) != "" {
		query = query.Where("platform = ?", strings.TrimSpace(*params.Platform))
	}
	if params.ValueTier != nil && strings.TrimSpace(*params.ValueTier) != "" {
		query = query.Where("value_tier = ?", strings.TrimSpace(*params.ValueTier))
	}
	if params.MinSamples != nil && *params.MinSamples > 0 {
		query = query.Where("total_uses >= ?", *params.MinSamples)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "updated_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.StrategyPerformance
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Opponent profiles ------------------------------------------------------

func (s *Store) RecordOpponentEncounter(ctx context.Context, params repository.OpponentEncounterParams) error {
	if s == nil || s.db == nil {
		return nil
	}
	bidderID := strings.TrimSpace(params.BidderID)
	if bidderID == "" {
		return nil
	}
	seenAt := params.SeenAt
	if seenAt.IsZero() {
		seenAt = time.Now().UTC()
	}

	// Running average is computed against the old row; Postgres evaluates all
	// SET expressions on the pre-update values.
	assignments := map[string]interface{}{
		"auctions_faced":  gorm.Expr("opponent_profiles.auctions_faced + 1"),
		"avg_final_price": gorm.Expr("(opponent_profiles.avg_final_price * opponent_profiles.auctions_faced + ?) / (opponent_profiles.auctions_faced + 1)", params.FinalPrice),
		"last_seen_at":    seenAt,
		"updated_at":      time.Now().UTC(),
	}
	winsAgainst := int64(0)
	if !params.WeWon {
		winsAgainst = 1
		assignments["wins_against"] = gorm.Expr("opponent_profiles.wins_against + 1")
	}

	item := &models.OpponentProfile{
		BidderID:      bidderID,
		AuctionsFaced: 1,
		WinsAgainst:   winsAgainst,
		AvgFinalPrice: params.FinalPrice,
		LastSeenAt:    seenAt,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bidder_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(item).Error
}

func (s *Store) ListOpponentProfiles(ctx context.Context, params repository.ListOpponentProfilesParams) ([]models.OpponentProfile, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.OpponentProfile{})
	if params.BidderID != nil && strings.TrimSpace(*params.BidderID) != "" {
		query = query.Where("bidder_id = ?", strings.TrimSpace(*params.BidderID))
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "last_seen_at")
	limit := normalizeLimit(params.Limit, 500)
	offset := normalizeOffset(params.Offset)
	var items []models.OpponentProfile
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Decision logs ----------------------------------------------------------

func (s *Store) InsertDecisionLog(ctx context.Context, item *models.DecisionLog) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetDecisionLogByID(ctx context.Context, id uint64) (*models.DecisionLog, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.DecisionLog
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListDecisionLogs(ctx context.Context, params repository.ListDecisionLogsParams) ([]models.DecisionLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.decisionLogQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.DecisionLog
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountDecisionLogs(ctx context.Context, params repository.ListDecisionLogsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.decisionLogQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) decisionLogQuery(ctx context.Context, params repository.ListDecisionLogsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.DecisionLog{})
	if params.Domain != nil && strings.TrimSpace(*params.Domain) != "" {
		query = query.Where("domain = ?", strings.TrimSpace(*params.Domain))
	}
	if params.Platform != nil && strings.TrimSpace(*params.Platform) != "" {
		query = query.Where("platform = ?", strings.TrimSpace(*params.Platform))
	}
	if params.ThreadID != nil && strings.TrimSpace(*params.ThreadID) != "" {
		query = query.Where("thread_id = ?", strings.TrimSpace(*params.ThreadID))
	}
	if params.DecisionSource != nil && strings.TrimSpace(*params.DecisionSource) != "" {
		query = query.Where("decision_source = ?", strings.TrimSpace(*params.DecisionSource))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) DeleteDecisionLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if before.IsZero() {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&models.DecisionLog{})
	return res.RowsAffected, res.Error
}

// --- Helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
