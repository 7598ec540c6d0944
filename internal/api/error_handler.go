package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusfest/event-portal/internal/api/handler"
)

const (
	genericErrorMessage = "Something went wrong"
	apiPrefix           = "/api/"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - answers page requests in plain text, with 200 and the user-facing reason
//     for rejected input and domain rejections;
//   - answers /api requests with {"error": "<message>"} and 400 for rejections;
//   - logs anything unexpected and answers it with a flat 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		isAPI := strings.HasPrefix(c.Request().URL.Path, apiPrefix)
		code, msg := resolveError(err, isAPI, log, c)

		switch {
		case c.Request().Method == http.MethodHead:
			_ = c.NoContent(code)
		case isAPI:
			_ = c.JSON(code, handler.ErrorResponse{Error: msg})
		default:
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, isAPI bool, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if msg, ok := handler.RejectionMessage(err); ok {
		if isAPI {
			return http.StatusBadRequest, msg
		}
		return http.StatusOK, msg
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, genericErrorMessage
}
