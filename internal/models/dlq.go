package models

import "time"

// DLQ holds outbox events that failed to apply (ES indexing or rescore).
// Rows stay until a retry succeeds and marks them resolved.
type DLQ struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OutboxID   int64     `gorm:"index"`
	EntityType string
	EntityID   string
	Op         string
	ErrorMsg   string
	Payload    []byte    `gorm:"type:bytea"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	RetriedAt  *time.Time
	Resolved   bool `gorm:"default:false"`
}
