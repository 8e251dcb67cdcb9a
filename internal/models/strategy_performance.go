package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StrategyPerformance aggregates outcomes per (strategy, platform, tier).
// Rows are only ever written through the increment upsert so concurrent
// recorders cannot lose counts.
type StrategyPerformance struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Strategy  string `gorm:"type:varchar(30);not null;uniqueIndex:idx_strategy_platform_tier"`
	Platform  string `gorm:"type:varchar(30);not null;uniqueIndex:idx_strategy_platform_tier"`
	ValueTier string `gorm:"type:varchar(10);not null;uniqueIndex:idx_strategy_platform_tier"`

	TotalUses   int64           `gorm:"not null;default:0"`
	Wins        int64           `gorm:"not null;default:0"`
	TotalProfit decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (StrategyPerformance) TableName() string {
	return "strategy_performance"
}

// WinRate is wins over uses; zero when unused.
func (p StrategyPerformance) WinRate() float64 {
	if p.TotalUses <= 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.TotalUses)
}
