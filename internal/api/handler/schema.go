package handler

import (
	"time"

	"github.com/campusfest/event-portal/internal/core/ports"
)

// signupRequest is the register form. JSON bodies are accepted too.
type signupRequest struct {
	Username string `form:"username" json:"username" validate:"required,max=64"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Phone    string `form:"phone" json:"phone" validate:"required"`
	Password string `form:"password" json:"password" validate:"required,max=72"`
}

func (r signupRequest) toInput() ports.SignupInput {
	return ports.SignupInput{
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	}
}

// loginRequest is the login form; loginId is a username or an email.
type loginRequest struct {
	LoginID  string `form:"loginId" json:"loginId" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type dashboardView struct {
	Groups []ports.CategoryGroup
}

type myEventRow struct {
	Name         string
	Category     string
	RegisteredAt time.Time
}

type myEventsView struct {
	Events []myEventRow
}
