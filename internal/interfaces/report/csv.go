// Package report holds the thin output surfaces of the pipeline: the CSV
// artifact and the console summary.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/einor12/nhl-pp1-targets/internal/domain/target"
)

var csvHeader = []string{"date", "opponent_team", "plays_against", "game_time_local", "pp1_players", "source"}

// CSVPath returns the artifact path for a day under the output directory.
func CSVPath(dir string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("nhl_pp1_targets_%s.csv", day.Format("2006-01-02")))
}

// WriteCSV writes the day's target rows, creating the output directory if
// needed, and returns the written path. An empty row set still produces a
// file with the header so a scheduled run always leaves an artifact.
func WriteCSV(dir string, day time.Time, rows []target.OpponentTarget) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}

	path := CSVPath(dir, day)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Date, row.OpponentTeam, row.PlaysAgainst, row.GameTimeLocal, row.PP1Players, row.Source}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("write row opponent=%s: %w", row.OpponentTeam, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
