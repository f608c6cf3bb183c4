package flashscore

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/einor12/nhl-pp1-targets/internal/domain/schedule"
)

// feedListKeys are the top-level keys the feed has been observed to nest its
// event list under. The upstream shape is not contractually fixed.
var feedListKeys = []string{"events", "matches", "data", "E"}

// FetchFeedGames pulls the compact feed and returns the games whose local
// calendar day matches the requested day.
func (c *Client) FetchFeedGames(ctx context.Context, day time.Time, loc *time.Location) ([]schedule.Game, error) {
	raw, err := c.http.Get(ctx, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule feed: %w", err)
	}

	payload, err := decodeFeedPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("decode schedule feed: %w", err)
	}

	games := make([]schedule.Game, 0, 16)
	for _, candidate := range feedEventList(payload) {
		event, ok := candidate.(map[string]any)
		if !ok {
			continue
		}

		home := eventTeamName(event, "homeTeam", "home", "homeName")
		away := eventTeamName(event, "awayTeam", "away", "awayName")
		if home == "" || away == "" {
			continue
		}

		startUTC, ok := eventTimestamp(event)
		if !ok {
			continue
		}

		game := schedule.NewGame(home, away, startUTC, loc, schedule.SourceJSONFeed)
		if !game.SameLocalDay(day) {
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

// decodeFeedPayload parses the body as JSON, recovering the JSON object
// embedded in surrounding text when the feed ships near-JSON.
func decodeFeedPayload(raw []byte) (any, error) {
	text := strings.TrimSpace(string(raw))

	var payload any
	if err := sonic.UnmarshalString(text, &payload); err == nil {
		return payload, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("payload is neither JSON nor JSON-in-text")
	}
	if err := sonic.UnmarshalString(text[start:end+1], &payload); err != nil {
		return nil, fmt.Errorf("embedded JSON: %w", err)
	}
	return payload, nil
}

func feedEventList(payload any) []any {
	switch typed := payload.(type) {
	case map[string]any:
		for _, key := range feedListKeys {
			if list, ok := typed[key].([]any); ok {
				return list
			}
		}
		return nil
	case []any:
		return typed
	default:
		return nil
	}
}

// eventTeamName reads the team name from a nested relation first, then the
// flat field variants.
func eventTeamName(event map[string]any, relationKey string, flatKeys ...string) string {
	if relation, ok := event[relationKey].(map[string]any); ok {
		if name := getString(relation, "name"); name != "" {
			return name
		}
	}
	for _, key := range flatKeys {
		if name := getString(event, key); name != "" {
			return name
		}
	}
	return ""
}

// eventTimestamp parses the event start in priority order: numeric epoch
// seconds, numeric string, then ISO-8601 with an optional trailing Z.
func eventTimestamp(event map[string]any) (time.Time, bool) {
	for _, key := range []string{"startTimestamp", "startTime", "time"} {
		value, ok := event[key]
		if !ok || value == nil {
			continue
		}

		switch typed := value.(type) {
		case float64:
			return time.Unix(int64(typed), 0).UTC(), true
		case string:
			trimmed := strings.TrimSpace(typed)
			if trimmed == "" {
				continue
			}
			if isDigits(trimmed) {
				var epoch int64
				for _, r := range trimmed {
					epoch = epoch*10 + int64(r-'0')
				}
				return time.Unix(epoch, 0).UTC(), true
			}
			if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
				return parsed.UTC(), true
			}
			if parsed, err := time.Parse("2006-01-02T15:04:05", trimmed); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func getString(m map[string]any, key string) string {
	if value, ok := m[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
