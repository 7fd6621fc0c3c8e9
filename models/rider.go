package models

import "gorm.io/gorm"

// Rider collects pickups. Riders never hold points.
type Rider struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:32" json:"phone,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`

	Timestamps
}

func (r *Rider) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
