package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

// memStore is an in-memory stand-in for the three Mongo repositories.
type memStore struct {
	mu     sync.Mutex
	users  []domain.User
	events []domain.Event
	regs   []domain.Registration
	// failList makes List fail, to exercise the 500 path.
	failList bool
}

type memUsers struct{ s *memStore }
type memEvents struct{ s *memStore }
type memRegs struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	out := *u
	out.ID = fmt.Sprintf("u%d", len(r.s.users)+1)
	r.s.users = append(r.s.users, out)
	return &out, nil
}

func (r memUsers) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username || u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memEvents) UpsertByName(_ context.Context, ev domain.Event) (ports.UpsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.events {
		if existing.Name == ev.Name {
			if existing.Category == ev.Category {
				return ports.UpsertUnchanged, nil
			}
			r.s.events[i].Category = ev.Category
			return ports.UpsertUpdated, nil
		}
	}
	ev.ID = fmt.Sprintf("e%d", len(r.s.events)+1)
	r.s.events = append(r.s.events, ev)
	return ports.UpsertInserted, nil
}

func (r memEvents) List(_ context.Context) ([]domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failList {
		return nil, fmt.Errorf("list events: connection reset")
	}
	return append([]domain.Event(nil), r.s.events...), nil
}

func (r memEvents) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ev := range r.s.events {
		if ev.ID == id {
			out := ev
			return &out, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r memEvents) FindByIDs(_ context.Context, ids []string) (map[string]domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]domain.Event, len(ids))
	for _, id := range ids {
		for _, ev := range r.s.events {
			if ev.ID == id {
				out[id] = ev
			}
		}
	}
	return out, nil
}

func (r memRegs) Exists(_ context.Context, userID, eventID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reg := range r.s.regs {
		if reg.UserID == userID && reg.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r memRegs) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.regs {
		if existing.UserID == reg.UserID && existing.EventID == reg.EventID {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	out := *reg
	out.ID = fmt.Sprintf("r%d", len(r.s.regs)+1)
	r.s.regs = append(r.s.regs, out)
	return &out, nil
}

func (r memRegs) ListByUser(_ context.Context, userID string) ([]domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Registration
	for _, reg := range r.s.regs {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}
