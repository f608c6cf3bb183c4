package roster

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts "MM:SS" text to whole seconds. Malformed or missing
// input maps to zero, never an error: absent ice time and unreported ice
// time are the same thing downstream.
func ParseClock(value string) int {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" || value == "00:00" || value == "--" {
		return 0
	}

	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}

	total := minutes*60 + seconds
	if total < 0 {
		return 0
	}
	return total
}

// FormatClock renders seconds as zero-padded "MM:SS".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
