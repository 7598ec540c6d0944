package handler

import (
	"time"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

type eventResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type registeredEventSummary struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type myEventResponse struct {
	ID           string                  `json:"id"`
	EventID      string                  `json:"event_id"`
	Event        *registeredEventSummary `json:"event"`
	RegisteredAt time.Time               `json:"registered_at"`
}

func toEventResponses(events []domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, eventResponse{ID: ev.ID, Name: ev.Name, Category: string(ev.Category)})
	}
	return out
}

// toMyEventResponses keeps registrations whose event is gone, with a null event.
func toMyEventResponses(regs []ports.RegisteredEvent) []myEventResponse {
	out := make([]myEventResponse, 0, len(regs))
	for _, r := range regs {
		resp := myEventResponse{
			ID:           r.RegistrationID,
			EventID:      r.EventID,
			RegisteredAt: r.RegisteredAt,
		}
		if r.EventName != "" {
			resp.Event = &registeredEventSummary{Name: r.EventName, Category: string(r.Category)}
		}
		out = append(out, resp)
	}
	return out
}

// ErrorResponse is the error envelope of the JSON endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
