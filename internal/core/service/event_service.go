package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

// RegistrationGuard abstracts the short-lived submission lock (Redis).
// Acquire reports false when another request for the same pair is in flight.
type RegistrationGuard interface {
	Acquire(ctx context.Context, userID, eventID string) (bool, error)
	Release(ctx context.Context, userID, eventID string) error
}

type eventService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	guard         RegistrationGuard
	log           zerolog.Logger
	now           func() time.Time
}

// NewEventService returns an EventService implementation. guard may be nil.
func NewEventService(
	events ports.EventRepository,
	registrations ports.RegistrationRepository,
	guard RegistrationGuard,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		events:        events,
		registrations: registrations,
		guard:         guard,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Catalog returns every event in storage order.
func (s *eventService) Catalog(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

// Dashboard groups the catalog by CategoryOrder. Known categories are always
// present, even when empty; unknown ones follow in first-seen order.
func (s *eventService) Dashboard(ctx context.Context) ([]ports.CategoryGroup, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	groups := make([]ports.CategoryGroup, 0, len(domain.CategoryOrder))
	index := make(map[domain.Category]int, len(domain.CategoryOrder))
	for _, c := range domain.CategoryOrder {
		index[c] = len(groups)
		groups = append(groups, ports.CategoryGroup{Category: c})
	}

	for _, ev := range events {
		i, ok := index[ev.Category]
		if !ok {
			i = len(groups)
			index[ev.Category] = i
			groups = append(groups, ports.CategoryGroup{Category: ev.Category})
		}
		groups[i].Events = append(groups[i].Events, ev)
	}

	return groups, nil
}

// RegisterForEvent records that userID attends eventID.
func (s *eventService) RegisterForEvent(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	if userID == "" || eventID == "" {
		return nil, domain.ErrInvalidInput
	}

	// 1. The event must exist.
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("register event: find event: %w", err)
	}

	// 2. Collapse concurrent double submissions. Guard failures are not fatal.
	if s.guard != nil {
		acquired, gErr := s.guard.Acquire(ctx, userID, event.ID)
		switch {
		case gErr != nil:
			s.log.Warn().Err(gErr).Str("user_id", userID).Str("event_id", event.ID).Msg("registration guard unavailable, continuing")
		case !acquired:
			return nil, domain.ErrRegistrationInProgress
		default:
			defer func() {
				if rErr := s.guard.Release(context.WithoutCancel(ctx), userID, event.ID); rErr != nil {
					s.log.Warn().Err(rErr).Str("user_id", userID).Str("event_id", event.ID).Msg("failed to release registration guard")
				}
			}()
		}
	}

	// 3. Pre-check for the readable rejection; the unique index covers races.
	exists, err := s.registrations.Exists(ctx, userID, event.ID)
	if err != nil {
		return nil, fmt.Errorf("register event: check existing: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	reg, err := s.registrations.Create(ctx, &domain.Registration{
		UserID:       userID,
		EventID:      event.ID,
		RegisteredAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("register event: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("event_id", event.ID).
		Str("event", event.Name).
		Msg("event registration created")

	return reg, nil
}

// MyEvents joins the user's registrations with their events, keeping the
// stored order of the registrations.
func (s *eventService) MyEvents(ctx context.Context, userID string) ([]ports.RegisteredEvent, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}

	regs, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("my events: list registrations: %w", err)
	}
	if len(regs) == 0 {
		return []ports.RegisteredEvent{}, nil
	}

	ids := make([]string, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.EventID)
	}
	events, err := s.events.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("my events: load events: %w", err)
	}

	out := make([]ports.RegisteredEvent, 0, len(regs))
	for _, r := range regs {
		item := ports.RegisteredEvent{
			RegistrationID: r.ID,
			EventID:        r.EventID,
			RegisteredAt:   r.RegisteredAt,
		}
		if ev, ok := events[r.EventID]; ok {
			item.EventName = ev.Name
			item.Category = ev.Category
		}
		out = append(out, item)
	}
	return out, nil
}
