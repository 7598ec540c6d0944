package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusfest/event-portal/internal/api/metrics"
	"github.com/campusfest/event-portal/internal/core/ports"
)

const removedEventName = "(removed event)"

// EventHandler serves the catalog and the per-user registrations.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Dashboard lists every event grouped by category.
//
// @Summary      Event dashboard
// @Tags         events
// @Produce      html
// @Success      200
// @Success      302  "Redirect to /login without a valid session"
// @Router       /dashboard [get]
func (h *EventHandler) Dashboard(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	groups, err := h.events.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "dashboard", dashboardView{Groups: groups})
}

// RegisterEvent signs the current user up for the event in the path.
//
// @Summary      Register for an event
// @Tags         events
// @Produce      plain
// @Param        id   path      string  true  "Event ID"
// @Success      303  "Redirect to /my-events"
// @Success      200  {string}  string  "Rejection message"
// @Failure      500  {string}  string
// @Router       /register-event/{id} [post]
func (h *EventHandler) RegisterEvent(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	_, err = h.events.RegisterForEvent(c.Request().Context(), userID, c.Param("id"))
	metrics.EventRegistrationsTotal.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/my-events")
}

// MyEvents lists the current user's registrations in the order they were made.
//
// @Summary      My registrations
// @Tags         events
// @Produce      html
// @Success      200
// @Router       /my-events [get]
func (h *EventHandler) MyEvents(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	regs, err := h.events.MyEvents(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	rows := make([]myEventRow, 0, len(regs))
	for _, r := range regs {
		name := r.EventName
		if name == "" {
			name = removedEventName
		}
		rows = append(rows, myEventRow{
			Name:         name,
			Category:     string(r.Category),
			RegisteredAt: r.RegisteredAt,
		})
	}

	return c.Render(http.StatusOK, "my-events", myEventsView{Events: rows})
}
