package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Round results as reported by the outer loop.
const (
	RoundOutbid  = "outbid"
	RoundWon     = "won"
	RoundLost    = "lost"
	RoundPending = "pending"
)

// AuctionRound records one decision round of a thread. The (thread, round)
// pair is unique; re-inserting the same round is a no-op.
type AuctionRound struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	ThreadID    string `gorm:"type:varchar(200);not null;uniqueIndex:idx_thread_round"`
	RoundNumber int    `gorm:"not null;uniqueIndex:idx_thread_round"`

	Domain   string `gorm:"type:varchar(255);not null;index"`
	Platform string `gorm:"type:varchar(30);not null;index"`

	Strategy string          `gorm:"type:varchar(30);not null"`
	Amount   decimal.Decimal `gorm:"type:numeric(30,10);not null"`

	Result         string `gorm:"type:varchar(10);not null;default:'pending'"`
	DecisionSource string `gorm:"type:varchar(20)"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (AuctionRound) TableName() string {
	return "auction_rounds"
}
