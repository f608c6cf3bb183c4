// Package app wires the pipeline's clients and services together.
package app

import (
	"context"
	"time"

	"github.com/einor12/nhl-pp1-targets/external/flashscore"
	"github.com/einor12/nhl-pp1-targets/external/nhlapi"
	"github.com/einor12/nhl-pp1-targets/internal/config"
	"github.com/einor12/nhl-pp1-targets/internal/domain/identity"
	"github.com/einor12/nhl-pp1-targets/internal/platform/cache"
	"github.com/einor12/nhl-pp1-targets/internal/platform/httpclient"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
	"github.com/einor12/nhl-pp1-targets/internal/platform/resilience"
	"github.com/einor12/nhl-pp1-targets/internal/usecase"
)

type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Targets *usecase.TargetService

	loc *time.Location
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	fetch := httpclient.New(httpclient.Config{
		Timeout:           cfg.RequestTimeout,
		MaxAttempts:       cfg.MaxAttempts,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
	})

	flash := flashscore.NewClient(fetch, flashscore.Config{
		FeedURL: cfg.FeedURL,
		PageURL: cfg.SchedulePageURL,
	}, logger)
	stats := nhlapi.NewClient(fetch, nhlapi.Config{
		BaseURL:    cfg.StatsBaseURL,
		WebBaseURL: cfg.WebBaseURL,
		Cache:      cache.NewStore(cfg.CacheTTL),
	}, logger)

	scheduleSvc := usecase.NewScheduleService(logger,
		flashscore.NewFeedSource(flash),
		flashscore.NewScrapeSource(flash),
		nhlapi.NewScheduleSource(stats),
	)
	rankingSvc := usecase.NewRankingService(stats, logger)
	targetSvc := usecase.NewTargetService(
		scheduleSvc,
		rankingSvc,
		stats,
		stats,
		identity.Default(),
		usecase.TargetServiceConfig{
			RankingSize:   cfg.RankingSize,
			RosterSize:    cfg.RosterSize,
			PlayerWorkers: cfg.PlayerStatWorkers,
		},
		logger,
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Targets: targetSvc,
		loc:     loc,
	}, nil
}

func (a *App) Location() *time.Location {
	return a.loc
}

// Run executes one full pipeline pass for the given day and season.
func (a *App) Run(ctx context.Context, day time.Time, season string) (usecase.BuildTargetsResult, error) {
	return a.Targets.BuildTargets(ctx, usecase.BuildTargetsInput{
		Day:    day,
		Loc:    a.loc,
		Season: season,
	})
}
