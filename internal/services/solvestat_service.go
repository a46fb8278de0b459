package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"github.com/progclub/clubhub/internal/ranklist"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SolveStatInput is what the contest-fetch integration (or an admin)
// reports for one user on one event.
type SolveStatInput struct {
	EventID      uuid.UUID `json:"event_id"`
	UserID       uuid.UUID `json:"user_id"`
	SolveCount   int       `json:"solve_count"`
	UpsolveCount int       `json:"upsolve_count"`
	IsPresent    bool      `json:"is_present"`
}

// UpsertSolveStat writes the authoritative (event, user) fact row and
// queues a rescore for every ranklist the event is attached to. Negative
// counts are rejected at write time, the scoring read path never sees them.
func UpsertSolveStat(db *gorm.DB, in SolveStatInput) error {
	if in.SolveCount < 0 || in.UpsolveCount < 0 {
		return fmt.Errorf("solve stat for event %s user %s: negative counts: %w",
			in.EventID, in.UserID, ranklist.ErrInvalidConfiguration)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		stat := models.SolveStat{
			EventID:      in.EventID,
			UserID:       in.UserID,
			SolveCount:   uint(in.SolveCount),
			UpsolveCount: uint(in.UpsolveCount),
			IsPresent:    in.IsPresent,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"solve_count", "upsolve_count", "is_present", "updated_at"}),
		}).Create(&stat).Error
		if err != nil {
			return err
		}

		var pairs []models.RanklistEvent
		if err := tx.Where("event_id = ?", in.EventID).Find(&pairs).Error; err != nil {
			return err
		}
		ranklistIDs := make([]uuid.UUID, 0, len(pairs))
		for _, p := range pairs {
			ranklistIDs = append(ranklistIDs, p.RanklistID)
		}
		if err := AddBatchOutboxEvents(tx, EntityRanklist, OpRescore, ranklistIDs); err != nil {
			return err
		}

		log.Printf("📤 Solve stat recorded for event=%s user=%s", in.EventID, in.UserID)
		return nil
	})
}
