// Package nhlapi is the client for the official statistics source: the team
// directory, season penalty-exposure summary, rosters, per-player power-play
// ice time, and the date-keyed schedule used as the resolver's last tier.
package nhlapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/einor12/nhl-pp1-targets/internal/domain/roster"
	"github.com/einor12/nhl-pp1-targets/internal/domain/team"
	"github.com/einor12/nhl-pp1-targets/internal/platform/cache"
	"github.com/einor12/nhl-pp1-targets/internal/platform/httpclient"
	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

const (
	defaultBaseURL    = "https://api.nhl.com"
	defaultWebBaseURL = "https://api-web.nhle.com"
)

type Config struct {
	BaseURL    string
	WebBaseURL string
	Cache      *cache.Store
}

type Client struct {
	http       *httpclient.Client
	baseURL    string
	webBaseURL string
	cache      *cache.Store
	logger     *logging.Logger
}

func NewClient(http *httpclient.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	webBaseURL := strings.TrimRight(strings.TrimSpace(cfg.WebBaseURL), "/")
	if webBaseURL == "" {
		webBaseURL = defaultWebBaseURL
	}
	store := cfg.Cache
	if store == nil {
		store = cache.NewStore(0)
	}
	return &Client{
		http:       http,
		baseURL:    baseURL,
		webBaseURL: webBaseURL,
		cache:      store,
		logger:     logger,
	}
}

type teamsEnvelope struct {
	Teams []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"teams"`
}

// Teams returns the full team directory. The directory is stable within a
// run, so the first fetch is memoized.
func (c *Client) Teams(ctx context.Context) ([]team.Team, error) {
	value, err := c.cache.GetOrLoad(ctx, "nhlapi:teams", func(ctx context.Context) (any, error) {
		var envelope teamsEnvelope
		if _, err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/teams", nil, &envelope); err != nil {
			return nil, fmt.Errorf("fetch teams: %w", err)
		}

		teams := make([]team.Team, 0, len(envelope.Teams))
		for _, item := range envelope.Teams {
			teams = append(teams, team.Team{ID: item.ID, Name: item.Name})
		}
		return teams, nil
	})
	if err != nil {
		return nil, err
	}

	teams, ok := value.([]team.Team)
	if !ok {
		return nil, fmt.Errorf("unexpected cached teams type %T", value)
	}
	return teams, nil
}

type teamSummaryEnvelope struct {
	Data []struct {
		TeamID           int64  `json:"teamId"`
		TeamFullName     string `json:"teamFullName"`
		TimesShorthanded int    `json:"timesShorthanded"`
	} `json:"data"`
}

// TeamSummary returns the season-aggregate penalty-exposure rows in the
// source's own order. Absent counts decode to zero.
func (c *Client) TeamSummary(ctx context.Context, season string) ([]team.Stat, error) {
	url := c.baseURL + "/stats/rest/en/team"
	params := map[string]string{
		"isAggregate": "false",
		"reportType":  "basic",
		"isGame":      "false",
		"reportName":  "teamsummary",
		"cayenneExp":  "seasonId=" + season,
	}

	var envelope teamSummaryEnvelope
	if _, err := c.http.GetJSON(ctx, url, params, &envelope); err != nil {
		return nil, fmt.Errorf("fetch team summary season=%s: %w", season, err)
	}

	stats := make([]team.Stat, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		stats = append(stats, team.Stat{
			TeamID:           row.TeamID,
			TeamName:         row.TeamFullName,
			TimesShorthanded: row.TimesShorthanded,
		})
	}
	return stats, nil
}

type rosterEnvelope struct {
	Roster []struct {
		Person struct {
			ID       int64  `json:"id"`
			FullName string `json:"fullName"`
		} `json:"person"`
		Position struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"position"`
	} `json:"roster"`
}

// Roster returns the team's season roster. Entries missing an id or name are
// dropped; ice time is filled in separately.
func (c *Client) Roster(ctx context.Context, teamID int64, season string) ([]roster.Entry, error) {
	url := fmt.Sprintf("%s/api/v1/teams/%d/roster", c.baseURL, teamID)
	params := map[string]string{"season": season}

	var envelope rosterEnvelope
	if _, err := c.http.GetJSON(ctx, url, params, &envelope); err != nil {
		return nil, fmt.Errorf("fetch roster team=%d season=%s: %w", teamID, season, err)
	}

	entries := make([]roster.Entry, 0, len(envelope.Roster))
	for _, item := range envelope.Roster {
		if item.Person.ID == 0 || item.Person.FullName == "" {
			continue
		}
		entries = append(entries, roster.Entry{
			PlayerID:     item.Person.ID,
			PlayerName:   item.Person.FullName,
			PositionCode: item.Position.Abbreviation,
		})
	}
	return entries, nil
}

type playerStatsEnvelope struct {
	Stats []struct {
		Splits []struct {
			Stat struct {
				PowerPlayTimeOnIcePerGame string `json:"powerPlayTimeOnIcePerGame"`
			} `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

// PlayerPPToi returns the player's power-play TOI per game as "MM:SS" text,
// or empty when the season has no splits for the player. Results are
// memoized per run; pooled fetches for the same player collapse.
func (c *Client) PlayerPPToi(ctx context.Context, playerID int64, season string) (string, error) {
	key := "nhlapi:pptoi:" + strconv.FormatInt(playerID, 10) + ":" + season
	value, err := c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		url := fmt.Sprintf("%s/api/v1/people/%d/stats", c.baseURL, playerID)
		params := map[string]string{
			"stats":  "statsSingleSeason",
			"season": season,
		}

		var envelope playerStatsEnvelope
		if _, err := c.http.GetJSON(ctx, url, params, &envelope); err != nil {
			return nil, fmt.Errorf("fetch player stats player=%d season=%s: %w", playerID, season, err)
		}

		if len(envelope.Stats) == 0 || len(envelope.Stats[0].Splits) == 0 {
			return "", nil
		}
		return envelope.Stats[0].Splits[0].Stat.PowerPlayTimeOnIcePerGame, nil
	})
	if err != nil {
		return "", err
	}

	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected cached stat type %T", value)
	}
	return text, nil
}
