package services

import (
	"log"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"gorm.io/gorm"
)

func CreateUser(db *gorm.DB, u *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, EntityUser, u.ID, OpUpsert, u)
	})
}

func UpdateUser(db *gorm.DB, id uuid.UUID, updates map[string]any) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		// Re-read so the outbox payload carries the committed state.
		user := models.User{}
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		if err := AddOutboxEvent(tx, EntityUser, user.ID, OpUpsert, user); err != nil {
			return err
		}

		log.Printf("📤 Outbox event recorded for user %s", user.Username)
		return nil
	})
}

// DeleteUser removes the user, their solve stats and ranklist memberships,
// and queues a rescore for every ranklist they were on.
func DeleteUser(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var memberships []models.RanklistUser
		if err := tx.Where("user_id = ?", id).Find(&memberships).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.SolveStat{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RanklistUser{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return err
		}

		if err := AddOutboxEvent(tx, EntityUser, id, OpDelete, nil); err != nil {
			return err
		}
		ranklistIDs := make([]uuid.UUID, 0, len(memberships))
		for _, m := range memberships {
			ranklistIDs = append(ranklistIDs, m.RanklistID)
		}
		return AddBatchOutboxEvents(tx, EntityRanklist, OpRescore, ranklistIDs)
	})
}
