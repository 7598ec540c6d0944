package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService implements signup and login.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.SessionTokens
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.SessionTokens, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Phone == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, &domain.ValidationError{Reason: "password must be at most 72 bytes"}
	}

	_, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, loginID, password string) (string, *domain.User, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}

	// loginID may be either field; emails are stored lower-cased.
	user, err := s.users.FindByUsernameOrEmail(ctx, loginID, strings.ToLower(loginID))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("login: lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	return token, user, nil
}
