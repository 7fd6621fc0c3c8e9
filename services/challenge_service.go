package services

import (
	"context"
	"errors"
	"fmt"

	"recycle-rewards-system/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeService struct {
	DB *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{DB: db}
}

// ChallengeStatus is a challenge as seen by one user.
type ChallengeStatus struct {
	models.Challenge
	Completed bool `json:"completed"`
}

// CompleteChallengeResult reports a first-time completion.
type CompleteChallengeResult struct {
	Challenge     models.Challenge `json:"challenge"`
	PointsAwarded int64            `json:"points_awarded"`
	Balance       int64            `json:"balance"`
}

// ListChallenges returns every challenge, cheapest first, flagged with
// whether the user has completed it.
func (s *ChallengeService) ListChallenges(ctx context.Context, actor Actor) ([]ChallengeStatus, error) {
	userID, err := actor.UserID()
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)

	var challenges []models.Challenge
	if err := db.Order("points ASC, title ASC").Find(&challenges).Error; err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}

	var doneIDs []string
	if err := db.Model(&models.ChallengeCompletion{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &doneIDs).Error; err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	done := make(map[string]bool, len(doneIDs))
	for _, id := range doneIDs {
		done[id] = true
	}

	out := make([]ChallengeStatus, len(challenges))
	for i, ch := range challenges {
		out[i] = ChallengeStatus{Challenge: ch, Completed: done[ch.ID]}
	}
	return out, nil
}

// CompleteChallenge records a completion and credits the reward, both in one
// transaction. The completion insert is ON CONFLICT DO NOTHING against the
// (user_id, challenge_id) unique index, so a repeat returns ErrAlreadyCompleted
// without touching the balance.
func (s *ChallengeService) CompleteChallenge(ctx context.Context, actor Actor, challengeID string) (*CompleteChallengeResult, error) {
	userID, err := actor.UserID()
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(challengeID); err != nil {
		return nil, fmt.Errorf("challenge %q: %w", challengeID, ErrNotFound)
	}

	var result CompleteChallengeResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ch models.Challenge
		if err := tx.Where("id = ?", challengeID).First(&ch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("challenge %s: %w", challengeID, ErrNotFound)
			}
			return fmt.Errorf("load challenge: %w", err)
		}

		completion := models.ChallengeCompletion{UserID: userID, ChallengeID: ch.ID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
		if res.Error != nil {
			return fmt.Errorf("insert completion: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCompleted
		}

		credited, err := creditPoints(tx, userID, models.PointsSourceChallenge, challengeRef(userID, ch.ID), ch.Points)
		if err != nil {
			return err
		}
		if !credited {
			return ErrAlreadyCompleted
		}

		var user models.User
		if err := tx.Select("points").Where("id = ?", userID).First(&user).Error; err != nil {
			return fmt.Errorf("reload user: %w", err)
		}

		result = CompleteChallengeResult{Challenge: ch, PointsAwarded: ch.Points, Balance: user.Points}
		return nil
	})
	if err != nil {
		return nil, err
	}

	challengeCompletions.Inc()
	pointsAwarded.WithLabelValues(string(models.PointsSourceChallenge)).Add(float64(result.PointsAwarded))
	zap.L().Info("[CHALLENGE] completed",
		zap.String("user_id", userID),
		zap.String("challenge", result.Challenge.Code),
		zap.Int64("points", result.PointsAwarded),
		zap.Int64("balance", result.Balance),
	)
	return &result, nil
}

func challengeRef(userID, challengeID string) string {
	return challengeID + ":" + userID
}
