package services

import (
	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"gorm.io/gorm"
)

func CreatePost(db *gorm.DB, p *models.Post) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, EntityPost, p.ID, OpUpsert, p)
	})
}

func UpdatePost(db *gorm.DB, id uuid.UUID, updates map[string]any) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		post := models.Post{}
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, EntityPost, post.ID, OpUpsert, post)
	})
}

func DeletePost(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Post{}, "id = ?", id).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, EntityPost, id, OpDelete, nil)
	})
}
