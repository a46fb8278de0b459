package db

import (
	"log"

	"github.com/progclub/clubhub/internal/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Ranklist{},
		&models.RanklistEvent{},
		&models.RanklistUser{},
		&models.SolveStat{},
		&models.Post{},
		&models.Outbox{},
		&models.DLQ{},
	)
	if err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ database migrated successfully")
}
