package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusfest/event-portal/internal/api/metrics"
	"github.com/campusfest/event-portal/internal/core/ports"
)

const (
	// SessionCookie is the name of the cookie carrying the session token.
	SessionCookie = "token"
	// UserIDKey is the echo.Context key holding the authenticated user id.
	UserIDKey = "user_id"

	loginPath = "/login"
)

type userIDCtxKey struct{}

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

// Session resolves the session cookie to a user id. Requests without a cookie
// are sent to the login page; requests with a cookie that fails verification
// additionally get the cookie cleared.
func Session(tokens ports.SessionTokens, cookie CookieConfig) echo.MiddlewareFunc {
	return session(tokens, cookie, func(c echo.Context) error {
		return c.Redirect(redirectStatus(c), loginPath)
	})
}

// APISession is Session for JSON endpoints: rejected requests get a 401
// instead of a redirect.
func APISession(tokens ports.SessionTokens, cookie CookieConfig) echo.MiddlewareFunc {
	return session(tokens, cookie, func(echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	})
}

func session(tokens ports.SessionTokens, cookie CookieConfig, reject echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				metrics.SessionRejectionsTotal.WithLabelValues("missing").Inc()
				return reject(c)
			}

			userID, err := tokens.Verify(ck.Value)
			if err != nil {
				metrics.SessionRejectionsTotal.WithLabelValues("invalid").Inc()
				ClearSessionCookie(c, cookie)
				return reject(c)
			}

			c.Set(UserIDKey, userID)
			req := c.Request()
			c.SetRequest(req.WithContext(WithUserID(req.Context(), userID)))

			return next(c)
		}
	}
}

// SetSessionCookie stores token in an HTTP-only cookie living as long as the token.
func SetSessionCookie(c echo.Context, token string, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		Expires:  time.Now().Add(cfg.TTL),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie instructs the client to drop the session cookie.
func ClearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectStatus picks 303 after a form submission so the browser follows
// up with a GET, and 302 otherwise.
func redirectStatus(c echo.Context) int {
	if m := c.Request().Method; m == http.MethodGet || m == http.MethodHead {
		return http.StatusFound
	}
	return http.StatusSeeOther
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// UserIDFromContext returns the id stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDCtxKey{}).(string)
	return id, ok && id != ""
}
