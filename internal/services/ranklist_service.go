package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"github.com/progclub/clubhub/internal/ranklist"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateRanklist(db *gorm.DB, rl *models.Ranklist) error {
	if rl.UpsolveWeight != nil && (*rl.UpsolveWeight < 0 || *rl.UpsolveWeight > 1) {
		return fmt.Errorf("ranklist %q: upsolve weight %v outside [0,1]: %w",
			rl.Keyword, *rl.UpsolveWeight, ranklist.ErrInvalidConfiguration)
	}
	return db.Create(rl).Error
}

// AttachEvent pairs an event with a ranklist at the given weight and queues
// a rescore. A nil weight leaves the pairing on the engine default;
// an explicit 0 is stored as 0. Re-attaching updates the weight in place.
func AttachEvent(db *gorm.DB, ranklistID, eventID uuid.UUID, weight *float64) error {
	if weight != nil && *weight < 0 {
		return fmt.Errorf("ranklist %s event %s: negative weight %v: %w",
			ranklistID, eventID, *weight, ranklist.ErrInvalidConfiguration)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		pair := models.RanklistEvent{RanklistID: ranklistID, EventID: eventID, Weight: weight}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ranklist_id"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight"}),
		}).Create(&pair).Error
		if err != nil {
			return err
		}
		return RequestRescore(tx, ranklistID)
	})
}

func DetachEvent(db *gorm.DB, ranklistID, eventID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("ranklist_id = ? AND event_id = ?", ranklistID, eventID).
			Delete(&models.RanklistEvent{}).Error
		if err != nil {
			return err
		}
		return RequestRescore(tx, ranklistID)
	})
}

// AttachUser adds a user to a ranklist with a zero cached score. The cache
// fills in on the next rescore.
func AttachUser(db *gorm.DB, ranklistID, userID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		membership := models.RanklistUser{RanklistID: ranklistID, UserID: userID}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ranklist_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&membership).Error
		if err != nil {
			return err
		}
		return RequestRescore(tx, ranklistID)
	})
}

func DetachUser(db *gorm.DB, ranklistID, userID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("ranklist_id = ? AND user_id = ?", ranklistID, userID).
			Delete(&models.RanklistUser{}).Error
		if err != nil {
			return err
		}
		return RequestRescore(tx, ranklistID)
	})
}

// RequestRescore queues an asynchronous score-cache refresh.
func RequestRescore(db *gorm.DB, ranklistID uuid.UUID) error {
	return AddOutboxEvent(db, EntityRanklist, ranklistID, OpRescore, nil)
}
