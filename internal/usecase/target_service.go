package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/einor12/nhl-pp1-targets/internal/domain/identity"
	"github.com/einor12/nhl-pp1-targets/internal/domain/roster"
	"github.com/einor12/nhl-pp1-targets/internal/domain/schedule"
	"github.com/einor12/nhl-pp1-targets/internal/domain/target"
	"github.com/einor12/nhl-pp1-targets/internal/domain/team"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

const (
	defaultRankingSize   = 5
	defaultRosterSize    = 5
	defaultPlayerWorkers = 4
	maxPlayerWorkers     = 8
)

// TeamDirectoryProvider supplies the canonical team directory for id lookups.
type TeamDirectoryProvider interface {
	Teams(ctx context.Context) ([]team.Team, error)
}

// RosterProvider supplies per-team rosters and per-player power-play ice time.
type RosterProvider interface {
	Roster(ctx context.Context, teamID int64, season string) ([]roster.Entry, error)
	PlayerPPToi(ctx context.Context, playerID int64, season string) (string, error)
}

type TargetServiceConfig struct {
	// RankingSize is the size of the most-shorthanded exposure set.
	RankingSize int
	// RosterSize is the number of PP1 slots reported per opponent.
	RosterSize int
	// PlayerWorkers bounds the pool fanning out per-player stat fetches.
	PlayerWorkers int
}

type TargetService struct {
	schedule  *ScheduleService
	ranking   *RankingService
	directory TeamDirectoryProvider
	rosters   RosterProvider
	names     identity.Normalizer
	cfg       TargetServiceConfig
	logger    *logging.Logger
}

func NewTargetService(
	scheduleService *ScheduleService,
	rankingService *RankingService,
	directory TeamDirectoryProvider,
	rosters RosterProvider,
	names identity.Normalizer,
	cfg TargetServiceConfig,
	logger *logging.Logger,
) *TargetService {
	if logger == nil {
		logger = logging.Default()
	}
	if names == nil {
		names = identity.Default()
	}
	if cfg.RankingSize <= 0 {
		cfg.RankingSize = defaultRankingSize
	}
	if cfg.RosterSize <= 0 {
		cfg.RosterSize = defaultRosterSize
	}
	return &TargetService{
		schedule:  scheduleService,
		ranking:   rankingService,
		directory: directory,
		rosters:   rosters,
		names:     names,
		cfg:       cfg,
		logger:    logger,
	}
}

type BuildTargetsInput struct {
	Day    time.Time
	Loc    *time.Location
	Season string
}

type BuildTargetsResult struct {
	Targets  []target.OpponentTarget
	TopTeams []team.Stat
	Games    []schedule.Game
	// Source names the schedule tier the games came from.
	Source string
}

// opponentMatch is one surviving game-side pairing before roster resolution.
type opponentMatch struct {
	opponent     string
	playsAgainst string
	game         schedule.Game
}

// BuildTargets cross-references the day's schedule against the
// most-shorthanded exposure set and assembles one row per distinct opponent.
// A game contributes a row only when exactly one side is in the set; the
// other side becomes the opponent. Opponents seen more than once keep their
// first pairing. Rows that cannot be resolved to a directory id, or whose
// roster cannot be fetched, are skipped with a warning rather than failing
// the run.
func (s *TargetService) BuildTargets(ctx context.Context, input BuildTargetsInput) (BuildTargetsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TargetService.BuildTargets")
	defer span.End()

	if s.schedule == nil || s.ranking == nil || s.directory == nil || s.rosters == nil {
		return BuildTargetsResult{}, fmt.Errorf("%w: target service is not fully configured", ErrDependencyUnavailable)
	}
	if input.Season == "" {
		return BuildTargetsResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	loc := input.Loc
	if loc == nil {
		loc = time.UTC
	}
	dayText := input.Day.Format("2006-01-02")

	games, source, err := s.schedule.GamesForDay(ctx, input.Day, loc)
	if err != nil {
		return BuildTargetsResult{}, err
	}
	topTeams, err := s.ranking.TopShorthanded(ctx, input.Season, s.cfg.RankingSize)
	if err != nil {
		return BuildTargetsResult{}, err
	}

	result := BuildTargetsResult{
		Targets:  make([]target.OpponentTarget, 0, len(games)),
		TopTeams: topTeams,
		Games:    games,
		Source:   source,
	}

	flagged := make(map[string]struct{}, len(topTeams))
	for _, row := range topTeams {
		flagged[s.names.Normalize(row.TeamName)] = struct{}{}
	}

	matches := s.matchOpponents(ctx, games, flagged)
	if len(matches) == 0 {
		return result, nil
	}

	teams, err := s.directory.Teams(ctx)
	if err != nil {
		return BuildTargetsResult{}, fmt.Errorf("load team directory: %w", err)
	}
	directory := team.NewDirectory(teams)

	for _, match := range matches {
		teamID, ok := directory.IDByName(match.opponent)
		if !ok {
			s.logger.WarnContext(ctx, "opponent not found in team directory, skipping",
				"opponent", match.opponent,
				"day", dayText,
			)
			continue
		}

		entries, err := s.rosters.Roster(ctx, teamID, input.Season)
		if err != nil {
			s.logger.WarnContext(ctx, "roster fetch failed, skipping opponent",
				"opponent", match.opponent,
				"team_id", teamID,
				"error", err,
			)
			continue
		}

		pp1, err := s.rankPowerPlayUnit(ctx, entries, input.Season)
		if err != nil {
			return BuildTargetsResult{}, err
		}

		result.Targets = append(result.Targets, target.OpponentTarget{
			Date:          dayText,
			OpponentTeam:  match.opponent,
			PlaysAgainst:  match.playsAgainst,
			GameTimeLocal: match.game.StartLocal.Format("15:04"),
			PP1Players:    formatPP1Line(pp1),
			Source:        match.game.Source,
		})
	}

	s.logger.InfoContext(ctx, "targets built",
		"day", dayText,
		"games", len(games),
		"targets", len(result.Targets),
	)
	return result, nil
}

// matchOpponents applies the exactly-one-side membership rule and keeps the
// first pairing per opponent, preserving encounter order.
func (s *TargetService) matchOpponents(ctx context.Context, games []schedule.Game, flagged map[string]struct{}) []opponentMatch {
	seen := make(map[string]struct{}, len(games))
	matches := make([]opponentMatch, 0, len(games))

	for _, game := range games {
		home := s.names.Normalize(game.HomeName)
		away := s.names.Normalize(game.AwayName)
		_, homeFlagged := flagged[home]
		_, awayFlagged := flagged[away]

		// A flagged-vs-flagged game has no distinguishable opponent, and a
		// game with no flagged side is irrelevant.
		if homeFlagged == awayFlagged {
			continue
		}

		match := opponentMatch{opponent: home, playsAgainst: away, game: game}
		if homeFlagged {
			match = opponentMatch{opponent: away, playsAgainst: home, game: game}
		}
		if _, dup := seen[match.opponent]; dup {
			s.logger.DebugContext(ctx, "duplicate opponent kept from first game",
				"opponent", match.opponent,
			)
			continue
		}
		seen[match.opponent] = struct{}{}
		matches = append(matches, match)
	}

	return matches
}

// rankPowerPlayUnit fills in each entry's power-play ice time over a bounded
// worker pool, then returns the top slots by seconds descending. The sort is
// stable, so equal values keep roster order and the pooled fetch order never
// leaks into the output.
func (s *TargetService) rankPowerPlayUnit(ctx context.Context, entries []roster.Entry, season string) ([]roster.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	workerCount := normalizePlayerWorkerCount(s.cfg.PlayerWorkers, len(entries))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create player stat pool: %w", err)
	}
	defer pool.Release()

	ranked := make([]roster.Entry, len(entries))
	copy(ranked, entries)

	var workers sync.WaitGroup
	for i := range ranked {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			entry := &ranked[i]
			text, err := s.rosters.PlayerPPToi(ctx, entry.PlayerID, season)
			if err != nil {
				s.logger.DebugContext(ctx, "player stat fetch failed, counting as zero",
					"player_id", entry.PlayerID,
					"error", err,
				)
				text = ""
			}
			entry.PPToi = text
			entry.PPToiSeconds = roster.ParseClock(text)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit player stat task: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PPToiSeconds > ranked[j].PPToiSeconds
	})
	if len(ranked) > s.cfg.RosterSize {
		ranked = ranked[:s.cfg.RosterSize]
	}
	return ranked, nil
}

func formatPP1Line(entries []roster.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, entry := range entries {
		if i > 0 {
			_, _ = buf.WriteString(", ")
		}
		_, _ = buf.WriteString(entry.PlayerName)
		_, _ = buf.WriteString(" (")
		_, _ = buf.WriteString(entry.PositionCode)
		_, _ = buf.WriteString(") - PP TOI/GP ")
		_, _ = buf.WriteString(roster.FormatClock(entry.PPToiSeconds))
	}
	return buf.String()
}

func normalizePlayerWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultPlayerWorkers
	}
	if value > maxPlayerWorkers {
		value = maxPlayerWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
