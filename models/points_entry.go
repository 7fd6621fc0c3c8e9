package models

import (
	"time"

	"gorm.io/gorm"
)

type PointsSource string

const (
	PointsSourcePickup    PointsSource = "pickup"
	PointsSourceChallenge PointsSource = "challenge"
)

// PointsEntry is the audit row behind every balance change.
// (source, reference_id) is unique so a credit can never be applied twice.
type PointsEntry struct {
	ID          string       `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Source      PointsSource `gorm:"type:varchar(16);not null;uniqueIndex:idx_points_source_ref" json:"source"`
	ReferenceID string       `gorm:"not null;uniqueIndex:idx_points_source_ref" json:"reference_id"`
	Amount      int64        `gorm:"not null" json:"amount"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

func (e *PointsEntry) BeforeCreate(tx *gorm.DB) error {
	newID(&e.ID)
	return nil
}
