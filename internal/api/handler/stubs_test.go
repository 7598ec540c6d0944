package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn    func(ctx context.Context, loginID, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, loginID, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, loginID, password)
}

type stubEventService struct {
	catalogFn   func(ctx context.Context) ([]domain.Event, error)
	dashboardFn func(ctx context.Context) ([]ports.CategoryGroup, error)
	registerFn  func(ctx context.Context, userID, eventID string) (*domain.Registration, error)
	myEventsFn  func(ctx context.Context, userID string) ([]ports.RegisteredEvent, error)
}

func (s *stubEventService) Catalog(ctx context.Context) ([]domain.Event, error) {
	return s.catalogFn(ctx)
}

func (s *stubEventService) Dashboard(ctx context.Context) ([]ports.CategoryGroup, error) {
	return s.dashboardFn(ctx)
}

func (s *stubEventService) RegisterForEvent(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	return s.registerFn(ctx, userID, eventID)
}

func (s *stubEventService) MyEvents(ctx context.Context, userID string) ([]ports.RegisteredEvent, error) {
	return s.myEventsFn(ctx, userID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = NewRenderer()
	return e
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}
