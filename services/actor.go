package services

import (
	"fmt"
	"strings"
)

// ActorKind tags which principal is acting on a request.
type ActorKind string

const (
	ActorUser  ActorKind = "user"
	ActorRider ActorKind = "rider"
)

// Actor is the authenticated principal, passed explicitly into every
// operation instead of being read from ambient session state.
type Actor struct {
	Kind ActorKind `json:"role"`
	ID   string    `json:"actor_id"`
}

func UserActor(id string) Actor  { return Actor{Kind: ActorUser, ID: id} }
func RiderActor(id string) Actor { return Actor{Kind: ActorRider, ID: id} }

// ParseActor builds an Actor from the role/id pair the gateway forwards.
func ParseActor(role, id string) (Actor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Actor{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	switch ActorKind(strings.ToLower(strings.TrimSpace(role))) {
	case ActorUser:
		return UserActor(id), nil
	case ActorRider:
		return RiderActor(id), nil
	default:
		return Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
}

// UserID returns the id when the actor is a user, ErrWrongRole otherwise.
func (a Actor) UserID() (string, error) {
	if a.Kind != ActorUser || a.ID == "" {
		return "", ErrWrongRole
	}
	return a.ID, nil
}

// RiderID returns the id when the actor is a rider, ErrWrongRole otherwise.
func (a Actor) RiderID() (string, error) {
	if a.Kind != ActorRider || a.ID == "" {
		return "", ErrWrongRole
	}
	return a.ID, nil
}
