package api

import (
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/campusfest/event-portal/docs"
	"github.com/campusfest/event-portal/internal/api/handler"
	"github.com/campusfest/event-portal/internal/api/middleware"
	"github.com/campusfest/event-portal/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth   ports.AuthService
	Events ports.EventService
	Tokens ports.SessionTokens
	Cookie middleware.CookieConfig
	// Health names the readiness checks, e.g. "mongodb" and "redis".
	Health map[string]handler.CheckFunc
	Log    zerolog.Logger
	// CORSOrigins lists the origins allowed to call the server from a browser.
	// Empty or "*" allows any origin without credentials.
	CORSOrigins []string
	// Registerer receives the HTTP request metrics. Nil leaves them off,
	// which tests rely on to build several routers in one process.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(corsMiddleware(d.CORSOrigins))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: d.Registerer,
		}))
	}

	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	eventHandler := handler.NewEventHandler(d.Events)
	session := middleware.Session(d.Tokens, d.Cookie)

	// --- Public pages ---
	e.GET("/", authHandler.Home)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Session-protected pages ---
	e.GET("/dashboard", eventHandler.Dashboard, session)
	e.POST("/register-event/:id", eventHandler.RegisterEvent, session)
	e.GET("/my-events", eventHandler.MyEvents, session)

	// --- JSON API ---
	apiHandler := handler.NewAPIHandler(d.Auth, d.Events)
	apiSession := middleware.APISession(d.Tokens, d.Cookie)

	apiGroup := e.Group("/api")
	apiGroup.GET("/events", apiHandler.Events)
	apiGroup.POST("/register", apiHandler.Register)
	apiGroup.POST("/register-event/:id", apiHandler.RegisterEvent, apiSession)
	apiGroup.GET("/my-events", apiHandler.MyEvents, apiSession)

	// --- Health, metrics and docs ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(d.Health).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsMiddleware(origins []string) echo.MiddlewareFunc {
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
		// Browsers refuse credentials alongside a wildcard origin.
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
