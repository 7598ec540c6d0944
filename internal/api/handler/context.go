package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusfest/event-portal/internal/api/middleware"
)

// ctxUserID returns the user id placed on the context by the Session
// middleware. An empty id means the route was mounted without it.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return userID, nil
}
