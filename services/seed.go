package services

import (
	"context"
	"errors"
	"fmt"

	"recycle-rewards-system/models"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultChallenges is the catalogue seeded on startup.
var DefaultChallenges = []models.Challenge{
	{Title: "First Pickup", Description: "Schedule your first recycling pickup.", Points: 10},
	{Title: "Bottle Hero", Description: "Recycle 20 plastic bottles in a single month.", Points: 20},
	{Title: "Cardboard Crusher", Description: "Flatten and recycle a week of cardboard.", Points: 25},
	{Title: "E-Waste Drop", Description: "Hand over an old phone, charger or battery for safe disposal.", Points: 40},
	{Title: "Zero Waste Week", Description: "Go seven days without sending anything to landfill.", Points: 50},
	{Title: "Community Cleanup", Description: "Join a neighbourhood cleanup drive.", Points: 60},
}

// SeedChallenges inserts any missing default challenges. Existing rows, keyed
// by slug code, are left untouched.
func SeedChallenges(ctx context.Context, db *gorm.DB) (int64, error) {
	rows := make([]models.Challenge, len(DefaultChallenges))
	for i, ch := range DefaultChallenges {
		ch.Code = slug.Make(ch.Title)
		rows[i] = ch
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("seed challenges: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		zap.L().Info("[SEED] challenges inserted", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}

// SeedRider creates the given rider unless one with that email exists.
func SeedRider(ctx context.Context, accounts *AccountService, in RegisterInput) error {
	if in.Email == "" {
		return nil
	}
	_, err := accounts.RegisterRider(ctx, in)
	switch {
	case errors.Is(err, ErrEmailTaken):
		zap.L().Info("[SEED] rider already exists", zap.String("email", in.Email))
		return nil
	case err != nil:
		return err
	}
	zap.L().Info("[SEED] rider created", zap.String("email", in.Email))
	return nil
}
