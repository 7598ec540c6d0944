package ports

import (
	"context"
	"time"

	"github.com/campusfest/event-portal/internal/core/domain"
)

// CategoryGroup is one dashboard section.
type CategoryGroup struct {
	Category domain.Category
	Events   []domain.Event
}

// RegisteredEvent is a registration joined with its event.
// EventName is empty when the event no longer exists.
type RegisteredEvent struct {
	RegistrationID string
	EventID        string
	EventName      string
	Category       domain.Category
	RegisteredAt   time.Time
}

// EventService covers the catalog views and event registration.
type EventService interface {
	// Catalog lists every event in storage order; never nil.
	Catalog(ctx context.Context) ([]domain.Event, error)
	Dashboard(ctx context.Context) ([]CategoryGroup, error)
	RegisterForEvent(ctx context.Context, userID, eventID string) (*domain.Registration, error)
	MyEvents(ctx context.Context, userID string) ([]RegisteredEvent, error)
}
