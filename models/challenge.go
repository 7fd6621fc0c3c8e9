package models

import (
	"time"

	"gorm.io/gorm"
)

// Challenge is static reference data: a one-time task worth a fixed bonus.
type Challenge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"` // slug of the title
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Points      int64     `gorm:"not null" json:"points"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	return nil
}

// ChallengeCompletion records that a user finished a challenge.
// The composite unique index is the authoritative one-time guard.
type ChallengeCompletion struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_challenge" json:"user_id"`
	ChallengeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_challenge" json:"challenge_id"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime"`
}

func (c *ChallengeCompletion) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	return nil
}
