package ports

import (
	"context"

	"github.com/campusfest/event-portal/internal/core/domain"
)

// RegistrationRepository persists (user, event) registrations.
type RegistrationRepository interface {
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	// Create returns domain.ErrAlreadyRegistered when the pair already exists.
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
	// ListByUser returns the user's registrations in insertion order.
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
}
