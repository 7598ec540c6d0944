package domain

import (
	"errors"
	"time"
)

var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrRegistrationInProgress means another submission for the same user
	// and event is still being processed.
	ErrRegistrationInProgress = errors.New("registration in progress")
)

// Registration records a user committing to attend an event.
// At most one exists per (UserID, EventID).
type Registration struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EventID      string    `json:"event_id"`
	RegisteredAt time.Time `json:"registered_at"`
}
