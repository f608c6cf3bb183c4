package flashscore

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/einor12/nhl-pp1-targets/internal/domain/schedule"
)

const (
	matchRowSelector = ".event__match, .event__match--scheduled, .event__match--live"
	homeTeamSelector = ".event__participant--home"
	awayTeamSelector = ".event__participant--away"
)

// startTimeAttrs are checked in order; a numeric value is required, rows
// without one are dropped.
var startTimeAttrs = []string{"data-start-time", "data-time-ts", "data-timestamp"}

// ScrapeGames extracts the day's games from the HTML listing page by its
// structural markers.
func (c *Client) ScrapeGames(ctx context.Context, day time.Time, loc *time.Location) ([]schedule.Game, error) {
	raw, err := c.http.Get(ctx, c.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schedule page: %w", err)
	}

	games := make([]schedule.Game, 0, 16)
	doc.Find(matchRowSelector).Each(func(_ int, row *goquery.Selection) {
		home := strings.TrimSpace(row.Find(homeTeamSelector).First().Text())
		away := strings.TrimSpace(row.Find(awayTeamSelector).First().Text())
		if home == "" || away == "" {
			return
		}

		startUTC, ok := rowStartTime(row)
		if !ok {
			return
		}

		game := schedule.NewGame(home, away, startUTC, loc, schedule.SourceHTMLScrape)
		if !game.SameLocalDay(day) {
			return
		}
		games = append(games, game)
	})

	return games, nil
}

func rowStartTime(row *goquery.Selection) (time.Time, bool) {
	for _, attr := range startTimeAttrs {
		value, exists := row.Attr(attr)
		if !exists {
			continue
		}
		value = strings.TrimSpace(value)
		if !isDigits(value) {
			continue
		}
		epoch, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		return time.Unix(epoch, 0).UTC(), true
	}
	return time.Time{}, false
}
