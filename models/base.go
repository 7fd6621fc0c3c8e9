package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// newID fills an empty primary key. Postgres could default it with
// gen_random_uuid(), but the sqlite test database cannot.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// All returns every model the service migrates, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Rider{},
		&Pickup{},
		&Challenge{},
		&ChallengeCompletion{},
		&PointsEntry{},
	}
}
