package services

import "errors"

// Business outcomes. All of them are recoverable and end a single request;
// handlers turn them into user-facing messages.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyCompleted   = errors.New("already completed")
	ErrAlreadyClaimed     = errors.New("pickup already claimed")
	ErrNotOwnedByRider    = errors.New("pickup is not assigned to this rider")
	ErrWrongRole          = errors.New("operation not allowed for this role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
