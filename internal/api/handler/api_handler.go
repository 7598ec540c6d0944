package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusfest/event-portal/internal/api/metrics"
	"github.com/campusfest/event-portal/internal/core/ports"
)

// APIHandler serves the JSON endpoints under /api.
type APIHandler struct {
	auth   ports.AuthService
	events ports.EventService
}

func NewAPIHandler(auth ports.AuthService, events ports.EventService) *APIHandler {
	return &APIHandler{auth: auth, events: events}
}

// Events lists the catalog.
//
// @Summary      List events
// @Tags         api
// @Produce      json
// @Success      200  {array}   eventResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/events [get]
func (h *APIHandler) Events(c echo.Context) error {
	events, err := h.events.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// Register creates an account from a JSON body.
//
// @Summary      Create an account
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/register [post]
func (h *APIHandler) Register(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req.toInput())
	metrics.SignupsTotal.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{Message: "User registered successfully", ID: user.ID})
}

// RegisterEvent signs the session user up for the event in the path.
//
// @Summary      Register for an event
// @Tags         api
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      201  {object}  createdResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/register-event/{id} [post]
func (h *APIHandler) RegisterEvent(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	reg, err := h.events.RegisterForEvent(c.Request().Context(), userID, c.Param("id"))
	metrics.EventRegistrationsTotal.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{Message: "Event registered successfully", ID: reg.ID})
}

// MyEvents lists the session user's registrations.
//
// @Summary      My registrations
// @Tags         api
// @Produce      json
// @Success      200  {array}   myEventResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/my-events [get]
func (h *APIHandler) MyEvents(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	regs, err := h.events.MyEvents(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMyEventResponses(regs))
}
