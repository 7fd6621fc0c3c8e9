package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseActor(t *testing.T) {
	a, err := ParseActor("User", " u-1 ")
	require.NoError(t, err)
	require.Equal(t, UserActor("u-1"), a)

	a, err = ParseActor("rider", "r-1")
	require.NoError(t, err)
	require.Equal(t, RiderActor("r-1"), a)

	_, err = ParseActor("admin", "x")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseActor("user", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestActorRoleAccessors(t *testing.T) {
	id, err := UserActor("u-1").UserID()
	require.NoError(t, err)
	require.Equal(t, "u-1", id)

	_, err = UserActor("u-1").RiderID()
	require.ErrorIs(t, err, ErrWrongRole)

	_, err = RiderActor("r-1").UserID()
	require.ErrorIs(t, err, ErrWrongRole)

	_, err = Actor{}.UserID()
	require.ErrorIs(t, err, ErrWrongRole)
}
