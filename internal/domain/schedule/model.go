package schedule

import "time"

// Source tags identify which tier of the fallback chain produced a game.
const (
	SourceJSONFeed         = "json-feed"
	SourceHTMLScrape       = "html-scrape"
	SourceOfficialSchedule = "official-schedule"
)

// Game is a single scheduled match as reported by an upstream source.
// Team names are free text, not yet canonicalized.
type Game struct {
	HomeName   string
	AwayName   string
	StartUTC   time.Time
	StartLocal time.Time
	Source     string
}

// NewGame builds a game with StartLocal derived from StartUTC, the only
// place the local rendering is computed.
func NewGame(home, away string, startUTC time.Time, loc *time.Location, source string) Game {
	startUTC = startUTC.UTC().Truncate(time.Second)
	return Game{
		HomeName:   home,
		AwayName:   away,
		StartUTC:   startUTC,
		StartLocal: startUTC.In(loc),
		Source:     source,
	}
}

// SameLocalDay reports whether the game starts on the given calendar day in
// the game's local zone.
func (g Game) SameLocalDay(day time.Time) bool {
	y1, m1, d1 := g.StartLocal.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
