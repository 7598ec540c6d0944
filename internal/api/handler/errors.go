package handler

import (
	"errors"

	"github.com/campusfest/event-portal/internal/api/metrics"
	"github.com/campusfest/event-portal/internal/core/domain"
)

var rejections = []struct {
	err error
	msg string
}{
	{domain.ErrUserExists, "User already exists"},
	{domain.ErrUserNotFound, "User not found"},
	{domain.ErrWrongPassword, "Wrong password"},
	{domain.ErrAlreadyRegistered, "Already registered for this event"},
	{domain.ErrRegistrationInProgress, "Registration already in progress, please try again"},
	{domain.ErrEventNotFound, "Event not found"},
	{domain.ErrInvalidInput, "All fields are required"},
}

// RejectionMessage returns the text shown to the user when err is an expected
// rejection of their input. ok is false for anything else.
func RejectionMessage(err error) (msg string, ok bool) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.msg, true
		}
	}
	return "", false
}

// resultOf classifies err for the result label of the domain counters.
func resultOf(err error) string {
	if err == nil {
		return metrics.ResultSuccess
	}
	if _, ok := RejectionMessage(err); ok {
		return metrics.ResultRejected
	}
	return metrics.ResultError
}
