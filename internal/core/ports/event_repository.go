package ports

import (
	"context"

	"github.com/campusfest/event-portal/internal/core/domain"
)

// UpsertResult reports what UpsertByName did.
type UpsertResult int

const (
	UpsertUnchanged UpsertResult = iota
	UpsertInserted
	UpsertUpdated
)

// EventRepository handles the event catalog.
type EventRepository interface {
	// UpsertByName updates the event with the same name or inserts it.
	UpsertByName(ctx context.Context, event domain.Event) (UpsertResult, error)
	// List returns every event in storage order.
	List(ctx context.Context) ([]domain.Event, error)
	// FindByID returns domain.ErrEventNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// FindByIDs returns the events found, keyed by id. Missing ids are omitted.
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Event, error)
}
