package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/einor12/nhl-pp1-targets/internal/domain/team"
	usecasemock "github.com/einor12/nhl-pp1-targets/internal/mocks/usecase"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

func TestRankingService_TopShorthanded_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stats := usecasemock.NewStatsProvider(t)
	service := NewRankingService(stats, logging.NewNop())

	season := "20252026"
	rows := []team.Stat{
		{TeamID: 19, TeamName: "St Louis Blues", TimesShorthanded: 260},
		{TeamID: 59, TeamName: "Utah Hockey Club", TimesShorthanded: 240},
		{TeamID: 54, TeamName: "Vegas Golden Knights", TimesShorthanded: 250},
	}

	stats.
		On("TeamSummary", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), season).
		Return(rows, nil).
		Once()

	got, err := service.TopShorthanded(ctx, season, 2)
	if err != nil {
		t.Fatalf("top shorthanded: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected size: got=%d want=2", len(got))
	}
	if got[0].TeamName != "St Louis Blues" || got[1].TeamName != "Vegas Golden Knights" {
		t.Fatalf("unexpected ranking: %s then %s", got[0].TeamName, got[1].TeamName)
	}
}

func TestRankingService_TopShorthanded_ProviderFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stats := usecasemock.NewStatsProvider(t)
	service := NewRankingService(stats, logging.NewNop())

	stats.
		On("TeamSummary", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "20252026").
		Return(nil, errors.New("summary endpoint down")).
		Once()

	_, err := service.TopShorthanded(ctx, "20252026", 5)
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
}
