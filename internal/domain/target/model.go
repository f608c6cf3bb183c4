package target

// OpponentTarget is one row of the daily output: a team facing one of the
// league's most-shorthanded clubs, with its projected PP1 personnel.
// Rows are keyed by OpponentTeam: at most one per opponent per day.
type OpponentTarget struct {
	Date          string
	OpponentTeam  string
	PlaysAgainst  string
	GameTimeLocal string
	PP1Players    string
	Source        string
}
