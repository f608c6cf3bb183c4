package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/einor12/nhl-pp1-targets/internal/app"
	"github.com/einor12/nhl-pp1-targets/internal/config"
	"github.com/einor12/nhl-pp1-targets/internal/interfaces/report"
	"github.com/einor12/nhl-pp1-targets/internal/observability"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	dateFlag := flag.String("date", "", "target day as YYYY-MM-DD (default: today in the configured zone)")
	seasonFlag := flag.String("season", "", "season id, e.g. 20252026 (default: from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	day := time.Now().In(application.Location())
	if *dateFlag != "" {
		day, err = time.ParseInLocation("2006-01-02", *dateFlag, application.Location())
		if err != nil {
			logger.Error("parse -date", "value", *dateFlag, "error", err)
			os.Exit(1)
		}
	}
	season := cfg.Season
	if *seasonFlag != "" {
		season = *seasonFlag
	}

	result, err := application.Run(ctx, day, season)
	if err != nil {
		logger.Error("pipeline run failed", "day", day.Format("2006-01-02"), "error", err)
		os.Exit(1)
	}

	path, err := report.WriteCSV(cfg.OutputDir, day, result.Targets)
	if err != nil {
		logger.Error("write csv artifact", "error", err)
		os.Exit(1)
	}

	report.PrintSummary(os.Stdout, season, result)
	logger.Info("run complete",
		"day", day.Format("2006-01-02"),
		"season", season,
		"targets", len(result.Targets),
		"schedule_source", result.Source,
		"artifact", path,
	)
}
