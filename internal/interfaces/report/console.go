package report

import (
	"fmt"
	"io"

	"github.com/einor12/nhl-pp1-targets/internal/usecase"
)

// PrintSummary renders the run's three sections: the exposure ranking, the
// day's schedule, and the target rows.
func PrintSummary(w io.Writer, season string, result usecase.BuildTargetsResult) {
	fmt.Fprintf(w, "\n=== Most shorthanded (season %s) ===\n", season)
	for _, row := range result.TopTeams {
		fmt.Fprintf(w, "%s: TSH %d\n", row.TeamName, row.TimesShorthanded)
	}

	fmt.Fprintf(w, "\n=== Games of the day [%s] ===\n", result.Source)
	for _, game := range result.Games {
		fmt.Fprintf(w, "%s  %s vs %s  [%s]\n",
			game.StartLocal.Format("15:04"), game.HomeName, game.AwayName, game.Source)
	}

	fmt.Fprintf(w, "\n=== PP1 targets ===\n")
	if len(result.Targets) == 0 {
		fmt.Fprintln(w, "(no rows for this day)")
		return
	}
	for _, row := range result.Targets {
		fmt.Fprintf(w, "%s  %s vs %s @ %s\n", row.Date, row.OpponentTeam, row.PlaysAgainst, row.GameTimeLocal)
		fmt.Fprintf(w, "  PP1: %s\n", row.PP1Players)
	}
}
