package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusfest/event-portal/internal/core/domain"
	"github.com/campusfest/event-portal/internal/core/ports"
)

// SeedReport summarises a SeedCatalog run.
type SeedReport struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// SeedCatalog upserts every catalog item keyed by name. Running it any number
// of times leaves exactly one event per distinct name.
func SeedCatalog(ctx context.Context, repo ports.EventRepository, catalog []domain.Event, log zerolog.Logger) (SeedReport, error) {
	var report SeedReport
	for _, item := range catalog {
		if item.Name == "" {
			return report, fmt.Errorf("seed catalog: %w: event without name", domain.ErrInvalidInput)
		}

		res, err := repo.UpsertByName(ctx, domain.Event{Name: item.Name, Category: item.Category})
		if err != nil {
			return report, fmt.Errorf("seed catalog: upsert %q: %w", item.Name, err)
		}
		switch res {
		case ports.UpsertInserted:
			report.Inserted++
		case ports.UpsertUpdated:
			report.Updated++
		default:
			report.Unchanged++
		}
	}

	log.Info().
		Int("inserted", report.Inserted).
		Int("updated", report.Updated).
		Int("unchanged", report.Unchanged).
		Msg("event catalog seeded")

	return report, nil
}
