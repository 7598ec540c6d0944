package ports

import (
	"context"

	"github.com/campusfest/event-portal/internal/core/domain"
)

// SignupInput carries the account fields submitted on the register form.
type SignupInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in SignupInput) (*domain.User, error)
	// Login accepts a username or an email as loginID and returns a signed
	// session token on success.
	Login(ctx context.Context, loginID, password string) (string, *domain.User, error)
}
