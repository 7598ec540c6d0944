package ports

import (
	"context"

	"github.com/campusfest/event-portal/internal/core/domain"
)

// UserRepository defines persistence for account records.
type UserRepository interface {
	// Create inserts the user. Returns domain.ErrUserExists when the username
	// or email is already taken at the storage level.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsernameOrEmail returns the first user whose username equals
	// username or whose email equals email, or domain.ErrUserNotFound.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}
