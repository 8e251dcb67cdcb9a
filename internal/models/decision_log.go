package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DecisionLog is the append-only audit record of one Decide call: which layer
// answered, what it said, and the snapshots that justify it.
type DecisionLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	Domain   string `gorm:"type:varchar(255);not null;index"`
	Platform string `gorm:"type:varchar(30);not null;index"`
	ThreadID string `gorm:"type:varchar(200);index"`

	DecisionSource string          `gorm:"type:varchar(20);not null;index"`
	Strategy       string          `gorm:"type:varchar(30);not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Confidence     float64         `gorm:"not null"`
	RiskLevel      string          `gorm:"type:varchar(10)"`
	ProxyAction    string          `gorm:"type:varchar(20)"`
	BlockReason    string          `gorm:"type:text"`

	ContextSnapshot datatypes.JSON `gorm:"type:jsonb"`
	IntelSnapshot   datatypes.JSON `gorm:"type:jsonb"`
	Checks          datatypes.JSON `gorm:"type:jsonb"`

	ElapsedMs int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (DecisionLog) TableName() string {
	return "decision_logs"
}
