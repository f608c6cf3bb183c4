package report

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/einor12/nhl-pp1-targets/internal/domain/schedule"
	"github.com/einor12/nhl-pp1-targets/internal/domain/target"
	"github.com/einor12/nhl-pp1-targets/internal/domain/team"
	"github.com/einor12/nhl-pp1-targets/internal/usecase"
)

func sampleTargets() []target.OpponentTarget {
	return []target.OpponentTarget{
		{
			Date:          "2025-10-29",
			OpponentTeam:  "Vegas Golden Knights",
			PlaysAgainst:  "St Louis Blues",
			GameTimeLocal: "21:00",
			PP1Players:    "Sixth Liner (C) - PP TOI/GP 04:00",
			Source:        schedule.SourceJSONFeed,
		},
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	day := time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

	path, err := WriteCSV(dir, day, sampleTargets())
	if err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	if !strings.HasSuffix(path, "nhl_pp1_targets_2025-10-29.csv") {
		t.Fatalf("unexpected path: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("unexpected record count: got=%d want=2", len(records))
	}
	if records[0][1] != "opponent_team" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Vegas Golden Knights" || records[1][5] != schedule.SourceJSONFeed {
		t.Fatalf("unexpected row: %v", records[1])
	}
}

func TestWriteCSV_EmptyDayStillWritesHeader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	path, err := WriteCSV(dir, day, nil)
	if err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d records", len(records))
	}
}

func TestPrintSummary_Sections(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	start := time.Date(2025, 10, 29, 19, 0, 0, 0, time.UTC)
	result := usecase.BuildTargetsResult{
		Targets: sampleTargets(),
		TopTeams: []team.Stat{
			{TeamID: 19, TeamName: "St Louis Blues", TimesShorthanded: 260},
		},
		Games: []schedule.Game{
			schedule.NewGame("Vegas Golden Knights", "St Louis Blues", start, loc, schedule.SourceJSONFeed),
		},
		Source: schedule.SourceJSONFeed,
	}

	var out strings.Builder
	PrintSummary(&out, "20252026", result)
	text := out.String()

	for _, want := range []string{
		"=== Most shorthanded (season 20252026) ===",
		"St Louis Blues: TSH 260",
		"=== Games of the day [json-feed] ===",
		"21:00  Vegas Golden Knights vs St Louis Blues  [json-feed]",
		"=== PP1 targets ===",
		"2025-10-29  Vegas Golden Knights vs St Louis Blues @ 21:00",
		"  PP1: Sixth Liner (C) - PP TOI/GP 04:00",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q in:\n%s", want, text)
		}
	}
}

func TestPrintSummary_EmptyDay(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	PrintSummary(&out, "20252026", usecase.BuildTargetsResult{Source: schedule.SourceOfficialSchedule})

	if !strings.Contains(out.String(), "(no rows for this day)") {
		t.Fatalf("empty day marker missing in:\n%s", out.String())
	}
}
