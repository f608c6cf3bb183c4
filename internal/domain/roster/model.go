package roster

// Entry is one player's power-play ice-time record for a season.
type Entry struct {
	PlayerID     int64
	PlayerName   string
	PositionCode string
	PPToiSeconds int
	PPToi        string
}
