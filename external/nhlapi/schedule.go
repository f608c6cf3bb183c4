package nhlapi

import (
	"context"
	"fmt"
	"time"

	"github.com/einor12/nhl-pp1-targets/internal/domain/schedule"
)

type scheduleEnvelope struct {
	GameWeek []struct {
		Games []struct {
			StartTimeUTC string       `json:"startTimeUTC"`
			HomeTeam     scheduleTeam `json:"homeTeam"`
			AwayTeam     scheduleTeam `json:"awayTeam"`
		} `json:"games"`
	} `json:"gameWeek"`
}

type scheduleTeam struct {
	Name struct {
		Default string `json:"default"`
	} `json:"name"`
	CommonName struct {
		Default string `json:"default"`
	} `json:"commonName"`
	Abbrev string `json:"abbrev"`
}

// displayName picks the richest available name variant, falling back to a
// placeholder so a nameless game still produces a row.
func (t scheduleTeam) displayName() string {
	if t.Name.Default != "" {
		return t.Name.Default
	}
	if t.CommonName.Default != "" {
		return t.CommonName.Default
	}
	if t.Abbrev != "" {
		return t.Abbrev
	}
	return "Unknown"
}

// ScheduleSource is the official-schedule tier: authoritative, date-keyed,
// and free of the feed's exposure context. It exists to guarantee the
// resolver a non-empty answer when the scraped tiers fail.
type ScheduleSource struct {
	client *Client
}

func NewScheduleSource(client *Client) *ScheduleSource {
	return &ScheduleSource{client: client}
}

func (s *ScheduleSource) Name() string {
	return schedule.SourceOfficialSchedule
}

// Resolve flattens all games across the returned gameWeek groups. The
// endpoint is keyed to the exact date, so no local-day filter is applied.
func (s *ScheduleSource) Resolve(ctx context.Context, day time.Time, loc *time.Location) ([]schedule.Game, error) {
	url := fmt.Sprintf("%s/v1/schedule/%s", s.client.webBaseURL, day.Format("2006-01-02"))

	var envelope scheduleEnvelope
	if _, err := s.client.http.GetJSON(ctx, url, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch official schedule day=%s: %w", day.Format("2006-01-02"), err)
	}

	games := make([]schedule.Game, 0, 16)
	for _, week := range envelope.GameWeek {
		for _, game := range week.Games {
			startUTC, err := time.Parse(time.RFC3339, game.StartTimeUTC)
			if err != nil {
				continue
			}
			games = append(games, schedule.NewGame(
				game.HomeTeam.displayName(),
				game.AwayTeam.displayName(),
				startUTC,
				loc,
				schedule.SourceOfficialSchedule,
			))
		}
	}
	return games, nil
}
