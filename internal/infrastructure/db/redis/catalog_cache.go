package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

const (
	catalogKey        = "catalog:events"
	defaultCatalogTTL = 10 * time.Minute
)

// CatalogCache decorates an EventRepository with a Redis copy of the full
// event list. Every Redis failure degrades to the wrapped repository.
type CatalogCache struct {
	next ports.EventRepository
	rdb  *redis.Client
	ttl  time.Duration
	sf   singleflight.Group
	cb   *gobreaker.CircuitBreaker
	log  zerolog.Logger

	recordLookup func(hit bool)
}

// CatalogOption customises a CatalogCache.
type CatalogOption func(*CatalogCache)

// WithLookupRecorder reports whether each List call was answered from redis.
func WithLookupRecorder(fn func(hit bool)) CatalogOption {
	return func(c *CatalogCache) { c.recordLookup = fn }
}

func NewCatalogCache(next ports.EventRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger, opts ...CatalogOption) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "catalog-cache",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	c := &CatalogCache{
		next:         next,
		rdb:          rdb,
		ttl:          ttl,
		cb:           cb,
		log:          log,
		recordLookup: func(bool) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CatalogCache) List(ctx context.Context) ([]domain.Event, error) {
	if events, ok := c.read(ctx); ok {
		c.recordLookup(true)
		return events, nil
	}
	c.recordLookup(false)

	v, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// The load is shared by every caller in the flight, so one caller
		// cancelling must not fail the others.
		loadCtx := context.WithoutCancel(ctx)
		events, err := c.next.List(loadCtx)
		if err != nil {
			return nil, err
		}
		c.write(loadCtx, events)
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers sharing a flight must not alias the same backing array.
	return append([]domain.Event(nil), v.([]domain.Event)...), nil
}

// UpsertByName writes through and drops the cached list.
func (c *CatalogCache) UpsertByName(ctx context.Context, event domain.Event) (ports.UpsertResult, error) {
	res, err := c.next.UpsertByName(ctx, event)
	if err != nil {
		return res, err
	}
	c.Invalidate(ctx)
	return res, nil
}

func (c *CatalogCache) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	return c.next.FindByID(ctx, id)
}

func (c *CatalogCache) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Event, error) {
	return c.next.FindByIDs(ctx, ids)
}

// Invalidate removes the cached list.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.rdb.Del(ctx, catalogKey).Err()
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}

func (c *CatalogCache) read(ctx context.Context) ([]domain.Event, bool) {
	v, err := c.cb.Execute(func() (interface{}, error) {
		b, err := c.rdb.Get(ctx, catalogKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return []byte(nil), nil
		}
		return b, err
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache read failed")
		return nil, false
	}
	raw, _ := v.([]byte)
	if len(raw) == 0 {
		return nil, false
	}

	var events []domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache holds undecodable data")
		return nil, false
	}
	return events, true
}

func (c *CatalogCache) write(ctx context.Context, events []domain.Event) {
	data, err := json.Marshal(events)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache encode failed")
		return
	}
	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.rdb.Set(ctx, catalogKey, data, c.ttl).Err()
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}
