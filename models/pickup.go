package models

import (
	"time"

	"gorm.io/gorm"
)

// PickupStatus moves strictly forward: requested → assigned → completed.
type PickupStatus string

const (
	PickupStatusRequested PickupStatus = "requested"
	PickupStatusAssigned  PickupStatus = "assigned"
	PickupStatusCompleted PickupStatus = "completed"
)

// Pickup is a single collection request. Immutable once completed.
type Pickup struct {
	ID         string       `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string       `gorm:"type:uuid;not null;index" json:"user_id"`
	RiderID    *string      `gorm:"type:uuid;index" json:"rider_id,omitempty"`
	Category   string       `gorm:"not null" json:"category"`
	Quantity   int          `gorm:"not null" json:"quantity"`
	Address    string       `gorm:"type:text;not null" json:"address"`
	PickupDate string       `gorm:"size:10" json:"pickup_date"` // YYYY-MM-DD
	PickupTime string       `gorm:"size:5" json:"pickup_time"`  // HH:MM
	Status     PickupStatus `gorm:"type:varchar(16);not null;default:'requested';index" json:"status"`

	PointsAwarded int64  `gorm:"not null;default:0" json:"points_awarded"`
	PhotoURL      string `gorm:"type:text" json:"photo_url,omitempty"`

	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *Pickup) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
