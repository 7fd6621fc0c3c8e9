package services

import (
	"context"
	"testing"

	"recycle-rewards-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCompleteChallenge(t *testing.T) {
	db := newTestDB(t)
	svc := NewChallengeService(db)
	ctx := context.Background()

	user := createUser(t, db, "Asha", "12 Green St")
	ch := createChallenge(t, db, "First Pickup", 10)

	res, err := svc.CompleteChallenge(ctx, UserActor(user.ID), ch.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), res.PointsAwarded)
	require.Equal(t, int64(10), res.Balance)
	require.Equal(t, ch.ID, res.Challenge.ID)

	var entries []models.PointsEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, models.PointsSourceChallenge, entries[0].Source)
	require.Equal(t, int64(10), entries[0].Amount)
}

func TestCompleteChallengeTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewChallengeService(db)
	ctx := context.Background()

	user := createUser(t, db, "Asha", "")
	ch := createChallenge(t, db, "Bottle Hero", 20)

	_, err := svc.CompleteChallenge(ctx, UserActor(user.ID), ch.ID)
	require.NoError(t, err)

	_, err = svc.CompleteChallenge(ctx, UserActor(user.ID), ch.ID)
	require.ErrorIs(t, err, ErrAlreadyCompleted)

	require.Equal(t, int64(20), reloadUser(t, db, user.ID).Points)

	var completions int64
	require.NoError(t, db.Model(&models.ChallengeCompletion{}).Where("user_id = ?", user.ID).Count(&completions).Error)
	require.Equal(t, int64(1), completions)
}

func TestCompleteChallengeIsPerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewChallengeService(db)
	ctx := context.Background()

	a := createUser(t, db, "Asha", "")
	b := createUser(t, db, "Ben", "")
	ch := createChallenge(t, db, "Zero Waste Week", 50)

	_, err := svc.CompleteChallenge(ctx, UserActor(a.ID), ch.ID)
	require.NoError(t, err)
	_, err = svc.CompleteChallenge(ctx, UserActor(b.ID), ch.ID)
	require.NoError(t, err)

	require.Equal(t, int64(50), reloadUser(t, db, a.ID).Points)
	require.Equal(t, int64(50), reloadUser(t, db, b.ID).Points)
}

func TestCompleteChallengeErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewChallengeService(db)
	ctx := context.Background()

	user := createUser(t, db, "Asha", "")
	rider := createRider(t, db, "Ravi")
	ch := createChallenge(t, db, "E-Waste Drop", 40)

	_, err := svc.CompleteChallenge(ctx, UserActor(user.ID), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CompleteChallenge(ctx, UserActor(user.ID), "not-a-uuid")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CompleteChallenge(ctx, RiderActor(rider.ID), ch.ID)
	require.ErrorIs(t, err, ErrWrongRole)

	require.Zero(t, reloadUser(t, db, user.ID).Points)
}

func TestListChallenges(t *testing.T) {
	db := newTestDB(t)
	svc := NewChallengeService(db)
	ctx := context.Background()

	user := createUser(t, db, "Asha", "")
	big := createChallenge(t, db, "Community Cleanup", 60)
	small := createChallenge(t, db, "First Pickup", 10)

	_, err := svc.CompleteChallenge(ctx, UserActor(user.ID), big.ID)
	require.NoError(t, err)

	list, err := svc.ListChallenges(ctx, UserActor(user.ID))
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.Equal(t, small.ID, list[0].ID)
	require.False(t, list[0].Completed)
	require.Equal(t, big.ID, list[1].ID)
	require.True(t, list[1].Completed)
}
