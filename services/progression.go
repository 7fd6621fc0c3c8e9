package services

import (
	"context"
	"errors"
	"fmt"

	"recycle-rewards-system/models"

	"gorm.io/gorm"
)

type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// Profile is a user's balance and forest progress.
type Profile struct {
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	Points    int64         `json:"points"`
	TreeLevel int           `json:"tree_level"`
	Forest    StageProgress `json:"forest"`
}

// GetProfile loads the actor's stored balance and tree level.
func (s *ProgressionService) GetProfile(ctx context.Context, actor Actor) (*Profile, error) {
	userID, err := actor.UserID()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	return &Profile{
		UserID:    user.ID,
		Name:      user.Name,
		Points:    user.Points,
		TreeLevel: user.TreeLevel,
		Forest:    Stage(user.TreeLevel),
	}, nil
}

// GetForest returns the forest stage for the actor's stored tree level.
func (s *ProgressionService) GetForest(ctx context.Context, actor Actor) (StageProgress, error) {
	p, err := s.GetProfile(ctx, actor)
	if err != nil {
		return StageProgress{}, err
	}
	return p.Forest, nil
}
