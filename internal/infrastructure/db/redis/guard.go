package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 10 * time.Second

// RegistrationGuard is a short-lived lock that collapses concurrent
// submissions of the same (user, event) registration.
// Key format: reg-guard:<user_id>:<event_id>
type RegistrationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationGuard creates a RegistrationGuard wrapping the given Redis client.
func NewRegistrationGuard(client *redis.Client) *RegistrationGuard {
	return &RegistrationGuard{client: client, ttl: guardTTL}
}

// Acquire reports whether the caller now holds the guard. The key expires
// after ttl so a crashed request cannot block the pair forever.
func (g *RegistrationGuard) Acquire(ctx context.Context, userID, eventID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID, eventID), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("guard acquire: %w", err)
	}
	return ok, nil
}

// Release drops the guard.
func (g *RegistrationGuard) Release(ctx context.Context, userID, eventID string) error {
	return g.client.Del(ctx, g.key(userID, eventID)).Err()
}

func (g *RegistrationGuard) key(userID, eventID string) string {
	return fmt.Sprintf("reg-guard:%s:%s", userID, eventID)
}
