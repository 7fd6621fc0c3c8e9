package services

import (
	"context"
	"testing"

	"recycle-rewards-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetProfileAndForest(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	pickups := NewPickupService(db, nil)
	ctx := context.Background()

	user := createUser(t, db, "Asha", "12 Green St")
	for i := 0; i < 7; i++ {
		requestPickup(t, pickups, user.ID, "Glass", 1)
	}

	profile, err := svc.GetProfile(ctx, UserActor(user.ID))
	require.NoError(t, err)
	require.Equal(t, 7, profile.TreeLevel)
	require.Equal(t, "Sprout", profile.Forest.Current.Label)
	require.Equal(t, 40.0, profile.Forest.Percent)

	forest, err := svc.GetForest(ctx, UserActor(user.ID))
	require.NoError(t, err)
	require.Equal(t, profile.Forest, forest)

	_, err = svc.GetProfile(ctx, UserActor(uuid.NewString()))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetProfile(ctx, RiderActor(user.ID))
	require.ErrorIs(t, err, ErrWrongRole)
}

func TestLeaderboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)
	ctx := context.Background()

	for name, points := range map[string]int64{"Asha": 1500, "Ben": 20, "Chen": 300, "Dev": 300} {
		u := createUser(t, db, name, "")
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).UpdateColumn("points", points).Error)
	}

	board, err := svc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 4)

	require.Equal(t, "Asha", board[0].Name)
	require.Equal(t, "1,500", board[0].PointsDisplay)
	require.Equal(t, 1, board[0].Rank)
	require.Equal(t, "Chen", board[1].Name)
	require.Equal(t, "Dev", board[2].Name)
	require.Equal(t, "Ben", board[3].Name)
	require.Equal(t, 4, board[3].Rank)

	top, err := svc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
}
