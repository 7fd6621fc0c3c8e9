package models

import "gorm.io/gorm"

// User is a household that requests pickups and earns points.
// Points is only ever changed through the points ledger.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Address      string `gorm:"type:text" json:"address,omitempty"`

	Points    int64 `gorm:"not null;default:0" json:"points"`
	TreeLevel int   `gorm:"not null;default:0" json:"tree_level"` // +1 per pickup requested

	Timestamps
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}
