package models

import "time"

// OpponentProfile accumulates what recorded outcomes reveal about a bidder.
// Merged into the intelligence bidder table on snapshot reload.
type OpponentProfile struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	BidderID string `gorm:"type:varchar(100);uniqueIndex;not null"`

	AuctionsFaced int64   `gorm:"not null;default:0"`
	WinsAgainst   int64   `gorm:"not null;default:0"`
	AvgFinalPrice float64 `gorm:"not null;default:0"`

	LastSeenAt time.Time `gorm:"type:timestamptz"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (OpponentProfile) TableName() string {
	return "opponent_profiles"
}
