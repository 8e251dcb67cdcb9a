package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// AuctionOutcome is one resolved auction. Keyed by AuctionID; recording the
// same auction twice replaces the row.
type AuctionOutcome struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	AuctionID string `gorm:"type:varchar(200);uniqueIndex;not null"`

	Domain    string `gorm:"type:varchar(255);not null;index"`
	Platform  string `gorm:"type:varchar(30);not null;index"`
	ValueTier string `gorm:"type:varchar(10);not null;index"`

	EstimatedValue decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	FinalPrice     decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	OurMaxBid      decimal.Decimal `gorm:"type:numeric(30,10);not null"`

	Won          bool    `gorm:"not null;index"`
	ProfitMargin float64 `gorm:"not null"`

	StrategyUsed string `gorm:"type:varchar(30);not null;index"`
	NumBidders   int    `gorm:"not null"`
	LastBidderID string `gorm:"type:varchar(100);index"`

	ContextSnapshot datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (AuctionOutcome) TableName() string {
	return "auction_outcomes"
}
