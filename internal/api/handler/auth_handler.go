package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusfest/event-portal/internal/api/metrics"
	"github.com/campusfest/event-portal/internal/api/middleware"
	"github.com/campusfest/event-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      middleware.CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Home sends visitors to the login page.
func (h *AuthHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

// RegisterForm renders the signup page.
//
// @Summary      Signup form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", nil)
}

// Register creates a new account and sends the user to the login page.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Username (up to 64 characters)"
// @Param        email     formData  string  true  "Email"
// @Param        phone     formData  string  true  "Phone"
// @Param        password  formData  string  true  "Password"
// @Success      303  "Redirect to /login"
// @Success      200  {string}  string  "Rejection message"
// @Failure      500  {string}  string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return err
	}

	_, err := h.authService.Register(c.Request().Context(), req.toInput())
	metrics.SignupsTotal.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm renders the login page.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", nil)
}

// Login checks the credentials, sets the session cookie and opens the dashboard.
//
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        loginId   formData  string  true  "Username or email"
// @Param        password  formData  string  true  "Password"
// @Success      303  "Redirect to /dashboard with the token cookie set"
// @Success      200  {string}  string  "Rejection message"
// @Failure      500  {string}  string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.LoginID, req.Password)
	metrics.LoginsTotal.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, token, h.cookie)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session cookie. The token itself stays valid until it expires.
//
// @Summary      Log out
// @Tags         auth
// @Success      302  "Redirect to /login"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cookie)
	return c.Redirect(http.StatusFound, "/login")
}
