package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"recycle-rewards-system/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestVerifyBalanceAfterRandomOperations(t *testing.T) {
	db := newTestDB(t)
	pickups := NewPickupService(db, nil)
	challenges := NewChallengeService(db)
	reconcile := NewReconcileService(db)
	ctx := context.Background()

	rng := rand.New(rand.NewSource(42))
	categories := append(Categories(), CategoryScore{Category: "Textiles"})

	users := []models.User{
		createUser(t, db, "Asha", "12 Green St"),
		createUser(t, db, "Ben", "3 Oak Rd"),
		createUser(t, db, "Chen", "9 Elm Ave"),
	}
	riders := []models.Rider{createRider(t, db, "Ravi"), createRider(t, db, "Meera")}
	chs := []models.Challenge{
		createChallenge(t, db, "First Pickup", 10),
		createChallenge(t, db, "Bottle Hero", 20),
		createChallenge(t, db, "Zero Waste Week", 50),
	}

	var created []string
	for i := 0; i < 200; i++ {
		switch rng.Intn(4) {
		case 0:
			u := users[rng.Intn(len(users))]
			cat := categories[rng.Intn(len(categories))].Category
			p, err := pickups.CreatePickup(ctx, UserActor(u.ID), CreatePickupInput{Category: cat, Quantity: 1 + rng.Intn(10)})
			require.NoError(t, err)
			created = append(created, p.ID)
		case 1:
			if len(created) == 0 {
				continue
			}
			r := riders[rng.Intn(len(riders))]
			_, err := pickups.ClaimPickup(ctx, RiderActor(r.ID), created[rng.Intn(len(created))])
			if err != nil {
				require.ErrorIs(t, err, ErrAlreadyClaimed)
			}
		case 2:
			if len(created) == 0 {
				continue
			}
			r := riders[rng.Intn(len(riders))]
			_, err := pickups.CompletePickup(ctx, RiderActor(r.ID), created[rng.Intn(len(created))], nil)
			if err != nil {
				require.True(t, errorsIsAny(err, ErrNotOwnedByRider, ErrAlreadyCompleted), err)
			}
		case 3:
			u := users[rng.Intn(len(users))]
			_, err := challenges.CompleteChallenge(ctx, UserActor(u.ID), chs[rng.Intn(len(chs))].ID)
			if err != nil {
				require.ErrorIs(t, err, ErrAlreadyCompleted)
			}
		}
	}

	for _, u := range users {
		report, err := reconcile.VerifyBalance(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, report.Consistent, "%+v", report)
		require.Equal(t, reloadUser(t, db, u.ID).Points, report.Expected())
		require.GreaterOrEqual(t, report.Stored, int64(0))
	}

	mismatches, err := reconcile.VerifyAll(ctx)
	require.NoError(t, err)
	require.Empty(t, mismatches)
	require.Zero(t, testutil.ToFloat64(balanceMismatches))
}

func TestVerifyAllFlagsTamperedBalance(t *testing.T) {
	db := newTestDB(t)
	reconcile := NewReconcileService(db)
	ctx := context.Background()

	good := createUser(t, db, "Asha", "")
	bad := createUser(t, db, "Ben", "")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bad.ID).UpdateColumn("points", 99).Error)

	report, err := reconcile.VerifyBalance(ctx, good.ID)
	require.NoError(t, err)
	require.True(t, report.Consistent)

	mismatches, err := reconcile.VerifyAll(ctx)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	require.Equal(t, bad.ID, mismatches[0].UserID)
	require.Equal(t, int64(99), mismatches[0].Stored)
	require.Zero(t, mismatches[0].Expected())
	require.Equal(t, 1.0, testutil.ToFloat64(balanceMismatches))

	_, err = reconcile.VerifyBalance(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReconcileScheduler(t *testing.T) {
	db := newTestDB(t)
	reconcile := NewReconcileService(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	balanceMismatches.Set(0)
	u := createUser(t, db, "Asha", "")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).UpdateColumn("points", 5).Error)

	sched, err := reconcile.StartReconcileScheduler(ctx, 20*time.Millisecond)
	require.NoError(t, err)
	defer func() { require.NoError(t, sched.Shutdown()) }()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(balanceMismatches) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
