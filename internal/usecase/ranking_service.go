package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/einor12/nhl-pp1-targets/internal/domain/team"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

// StatsProvider supplies the season-aggregate penalty-exposure rows.
type StatsProvider interface {
	TeamSummary(ctx context.Context, season string) ([]team.Stat, error)
}

type RankingService struct {
	stats  StatsProvider
	logger *logging.Logger
}

func NewRankingService(stats StatsProvider, logger *logging.Logger) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{
		stats:  stats,
		logger: logger,
	}
}

// TopShorthanded returns the n most shorthanded teams of the season,
// descending by count. Ties keep the source's row order (stable sort, no
// secondary key). Fewer than n rows in the source yields fewer rows, never an
// error.
func (s *RankingService) TopShorthanded(ctx context.Context, season string, n int) ([]team.Stat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.TopShorthanded")
	defer span.End()

	if s.stats == nil {
		return nil, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: ranking size must be greater than zero", ErrInvalidInput)
	}

	rows, err := s.stats.TeamSummary(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("load team summary season=%s: %w", season, err)
	}

	ranked := make([]team.Stat, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TimesShorthanded > ranked[j].TimesShorthanded
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	s.logger.DebugContext(ctx, "penalty exposure ranking computed",
		"season", season,
		"teams", len(ranked),
	)
	return ranked, nil
}
