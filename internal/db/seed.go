package db

import (
	"encoding/json"
	"log"
	"time"

	"github.com/progclub/clubhub/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("🌱 Data already exists, skipping seed.")
		return
	}

	// Wrap in a transaction for atomicity
	db.Transaction(func(tx *gorm.DB) error {
		alice := models.User{
			Username:         "alice",
			Email:            "alice@example.com",
			Name:             "Alice Rahman",
			CodeforcesHandle: "alice_cf",
		}
		bob := models.User{
			Username:         "bob",
			Email:            "bob@example.com",
			Name:             "Bob Hasan",
			CodeforcesHandle: "bob_cf",
			VjudgeHandle:     "bob_vj",
		}
		for _, u := range []*models.User{&alice, &bob} {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		weekly := models.Event{
			Title:             "Weekly Contest 01",
			Description:       "Div 2 style practice round",
			Type:              models.EventContest,
			Scope:             models.ScopePublic,
			OpenForAttendance: true,
			StartsAt:          time.Now().Add(-72 * time.Hour),
			EndsAt:            time.Now().Add(-70 * time.Hour),
		}
		class := models.Event{
			Title:    "DP Bootcamp",
			Type:     models.EventClass,
			Scope:    models.ScopeJuniorProgrammers,
			StartsAt: time.Now().Add(-48 * time.Hour),
			EndsAt:   time.Now().Add(-46 * time.Hour),
		}
		for _, e := range []*models.Event{&weekly, &class} {
			if err := tx.Create(e).Error; err != nil {
				return err
			}
		}

		upsolve := 0.25
		season := models.Ranklist{
			Title:         "Fall Season",
			Keyword:       "fall-season",
			UpsolveWeight: &upsolve,
		}
		if err := tx.Create(&season).Error; err != nil {
			return err
		}

		fullWeight, halfWeight := 1.0, 0.5
		pairs := []any{
			&models.RanklistEvent{RanklistID: season.ID, EventID: weekly.ID, Weight: &fullWeight},
			&models.RanklistEvent{RanklistID: season.ID, EventID: class.ID, Weight: &halfWeight},
			&models.RanklistUser{RanklistID: season.ID, UserID: alice.ID},
			&models.RanklistUser{RanklistID: season.ID, UserID: bob.ID},
			&models.SolveStat{EventID: weekly.ID, UserID: alice.ID, SolveCount: 3, UpsolveCount: 2, IsPresent: true},
			&models.SolveStat{EventID: weekly.ID, UserID: bob.ID, SolveCount: 1, IsPresent: true},
		}
		for _, p := range pairs {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		tags, _ := json.Marshal([]string{"announcement"})
		post := models.Post{
			Title:     "Fall season kicks off",
			Slug:      "fall-season-kicks-off",
			Body:      "First weekly contest is up, standings on the fall-season ranklist.",
			Tags:      datatypes.JSON(tags),
			Published: true,
			AuthorID:  alice.ID,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		log.Println("🌱 Sample data inserted successfully.")
		return nil
	})
}
