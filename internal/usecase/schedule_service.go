package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/einor12/nhl-pp1-targets/internal/domain/schedule"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

// ScheduleSource is one tier of the schedule fallback chain. Tiers are
// consulted in registration order; the first tier returning at least one game
// wins.
type ScheduleSource interface {
	Name() string
	Resolve(ctx context.Context, day time.Time, loc *time.Location) ([]schedule.Game, error)
}

type ScheduleService struct {
	sources []ScheduleSource
	logger  *logging.Logger
}

func NewScheduleService(logger *logging.Logger, sources ...ScheduleSource) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
		sources: sources,
		logger:  logger,
	}
}

// GamesForDay resolves the day's schedule through the tier chain. A tier that
// errors or comes back empty degrades to the next one with a warning, never
// aborting the run. When every tier is exhausted the day is treated as having
// no games, tagged with the last tier consulted.
func (s *ScheduleService) GamesForDay(ctx context.Context, day time.Time, loc *time.Location) ([]schedule.Game, string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GamesForDay")
	defer span.End()

	if len(s.sources) == 0 {
		return nil, "", fmt.Errorf("%w: no schedule sources configured", ErrDependencyUnavailable)
	}
	if loc == nil {
		loc = time.UTC
	}
	dayText := day.Format("2006-01-02")

	lastSource := ""
	for _, source := range s.sources {
		lastSource = source.Name()

		games, err := source.Resolve(ctx, day, loc)
		if err != nil {
			s.logger.WarnContext(ctx, "schedule source failed, falling through",
				"source", source.Name(),
				"day", dayText,
				"error", err,
			)
			continue
		}
		if len(games) == 0 {
			s.logger.DebugContext(ctx, "schedule source returned no games, falling through",
				"source", source.Name(),
				"day", dayText,
			)
			continue
		}

		s.logger.InfoContext(ctx, "schedule resolved",
			"source", source.Name(),
			"day", dayText,
			"games", len(games),
		)
		return games, source.Name(), nil
	}

	s.logger.InfoContext(ctx, "no games found for day", "day", dayText)
	return []schedule.Game{}, lastSource, nil
}
