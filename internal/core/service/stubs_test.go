package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", len(r.users)+1)
	r.users = append(r.users, copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubEventRepo struct {
	mu      sync.Mutex
	events  []domain.Event
	listErr error
}

func (r *stubEventRepo) UpsertByName(_ context.Context, ev domain.Event) (ports.UpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.events {
		if e.Name == ev.Name {
			if e.Category == ev.Category {
				return ports.UpsertUnchanged, nil
			}
			r.events[i].Category = ev.Category
			return ports.UpsertUpdated, nil
		}
	}
	ev.ID = fmt.Sprintf("e%d", len(r.events)+1)
	r.events = append(r.events, ev)
	return ports.UpsertInserted, nil
}

func (r *stubEventRepo) List(_ context.Context) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Event(nil), r.events...), nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			ev := e
			return &ev, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r *stubEventRepo) FindByIDs(_ context.Context, ids []string) (map[string]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Event)
	for _, id := range ids {
		for _, e := range r.events {
			if e.ID == id {
				out[id] = e
			}
		}
	}
	return out, nil
}

func (r *stubEventRepo) countByName(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if strings.EqualFold(e.Name, name) {
			n++
		}
	}
	return n
}

type stubRegistrationRepo struct {
	mu   sync.Mutex
	regs []domain.Registration
	// skipExists makes Exists always report false, forcing the storage-level
	// uniqueness path.
	skipExists bool
}

func (r *stubRegistrationRepo) Exists(_ context.Context, userID, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipExists {
		return false, nil
	}
	for _, reg := range r.regs {
		if reg.UserID == userID && reg.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRegistrationRepo) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.regs {
		if existing.UserID == reg.UserID && existing.EventID == reg.EventID {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	copy := *reg
	copy.ID = fmt.Sprintf("r%d", len(r.regs)+1)
	r.regs = append(r.regs, copy)
	return &copy, nil
}

func (r *stubRegistrationRepo) ListByUser(_ context.Context, userID string) ([]domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Registration
	for _, reg := range r.regs {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *stubRegistrationRepo) count(userID, eventID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, reg := range r.regs {
		if reg.UserID == userID && reg.EventID == eventID {
			n++
		}
	}
	return n
}

type stubTokens struct {
	issueErr error
}

func (s *stubTokens) Issue(userID string) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	return "token-for-" + userID, nil
}

func (s *stubTokens) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "token-for-")
	if !ok || id == "" {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}

type stubGuard struct {
	held       map[string]bool
	acquireErr error
	released   []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, userID, eventID string) (bool, error) {
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	key := userID + ":" + eventID
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, userID, eventID string) error {
	key := userID + ":" + eventID
	delete(g.held, key)
	g.released = append(g.released, key)
	return nil
}
