package services

import (
	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"gorm.io/gorm"
)

func CreateEvent(db *gorm.DB, e *models.Event) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, EntityEvent, e.ID, OpUpsert, e)
	})
}

func UpdateEvent(db *gorm.DB, id uuid.UUID, updates map[string]any) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Event{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		event := models.Event{}
		if err := tx.First(&event, "id = ?", id).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, EntityEvent, event.ID, OpUpsert, event)
	})
}

// DeleteEvent removes the event with its solve stats and ranklist pairings,
// then queues a rescore for every ranklist that carried it.
func DeleteEvent(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var pairs []models.RanklistEvent
		if err := tx.Where("event_id = ?", id).Find(&pairs).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.SolveStat{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.RanklistEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Event{}, "id = ?", id).Error; err != nil {
			return err
		}

		if err := AddOutboxEvent(tx, EntityEvent, id, OpDelete, nil); err != nil {
			return err
		}
		ranklistIDs := make([]uuid.UUID, 0, len(pairs))
		for _, p := range pairs {
			ranklistIDs = append(ranklistIDs, p.RanklistID)
		}
		return AddBatchOutboxEvents(tx, EntityRanklist, OpRescore, ranklistIDs)
	})
}
