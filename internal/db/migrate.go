package db

import (
	"domainbid/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.AuctionOutcome{},
		&models.AuctionRound{},
		&models.StrategyPerformance{},
		&models.OpponentProfile{},
		&models.DecisionLog{},
	)
}
