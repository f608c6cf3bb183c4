package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/einor12/nhl-pp1-targets/internal/domain/team"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

type stubStatsProvider struct {
	rows []team.Stat
	err  error
}

func (s *stubStatsProvider) TeamSummary(ctx context.Context, season string) ([]team.Stat, error) {
	return s.rows, s.err
}

func TestRankingService_TopShorthanded_DescendingStable(t *testing.T) {
	t.Parallel()

	stats := &stubStatsProvider{rows: []team.Stat{
		{TeamID: 1, TeamName: "Anaheim Ducks", TimesShorthanded: 210},
		{TeamID: 2, TeamName: "Boston Bruins", TimesShorthanded: 260},
		{TeamID: 3, TeamName: "Calgary Flames", TimesShorthanded: 260},
		{TeamID: 4, TeamName: "Dallas Stars", TimesShorthanded: 195},
		{TeamID: 5, TeamName: "Edmonton Oilers", TimesShorthanded: 240},
	}}
	service := NewRankingService(stats, logging.NewNop())

	ranked, err := service.TopShorthanded(context.Background(), "20252026", 3)
	if err != nil {
		t.Fatalf("TopShorthanded error: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("unexpected size: got=%d want=3", len(ranked))
	}
	// Bruins and Flames tie at 260; the source row order decides.
	if ranked[0].TeamName != "Boston Bruins" || ranked[1].TeamName != "Calgary Flames" {
		t.Fatalf("tie must keep source order, got %s then %s", ranked[0].TeamName, ranked[1].TeamName)
	}
	if ranked[2].TeamName != "Edmonton Oilers" {
		t.Fatalf("unexpected third team: %s", ranked[2].TeamName)
	}
}

func TestRankingService_TopShorthanded_FewerRowsThanRequested(t *testing.T) {
	t.Parallel()

	stats := &stubStatsProvider{rows: []team.Stat{
		{TeamID: 1, TeamName: "Anaheim Ducks", TimesShorthanded: 210},
	}}
	service := NewRankingService(stats, logging.NewNop())

	ranked, err := service.TopShorthanded(context.Background(), "20252026", 5)
	if err != nil {
		t.Fatalf("a short source must not be an error, got %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("unexpected size: got=%d want=1", len(ranked))
	}
}

func TestRankingService_TopShorthanded_InvalidSize(t *testing.T) {
	t.Parallel()

	service := NewRankingService(&stubStatsProvider{}, logging.NewNop())

	_, err := service.TopShorthanded(context.Background(), "20252026", 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRankingService_TopShorthanded_ProviderErrorPropagates(t *testing.T) {
	t.Parallel()

	service := NewRankingService(&stubStatsProvider{err: errors.New("summary endpoint down")}, logging.NewNop())

	_, err := service.TopShorthanded(context.Background(), "20252026", 5)
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
}
