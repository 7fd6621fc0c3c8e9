package services

import (
	"context"
	"fmt"

	"recycle-rewards-system/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Points        int64  `json:"points"`
	PointsDisplay string `json:"points_display"`
	TreeLevel     int    `json:"tree_level"`
}

const (
	DefaultLeaderboardSize = 20
	MaxLeaderboardSize     = 100
)

var numberPrinter = message.NewPrinter(language.English)

// Leaderboard ranks users by points, highest first. Ties are ordered by name.
func (s *ProgressionService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	if limit > MaxLeaderboardSize {
		limit = MaxLeaderboardSize
	}

	var users []models.User
	if err := s.DB.WithContext(ctx).
		Select("id", "name", "points", "tree_level").
		Order("points DESC, name ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	out := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		out[i] = LeaderboardEntry{
			Rank:          i + 1,
			UserID:        u.ID,
			Name:          u.Name,
			Points:        u.Points,
			PointsDisplay: numberPrinter.Sprintf("%d", u.Points),
			TreeLevel:     u.TreeLevel,
		}
	}
	return out, nil
}
