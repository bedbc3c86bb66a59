// Package export writes match logs and standings to files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ezBadminton/goswiss/core"
)

var (
	matchesHeader   = []string{"Round", "Player 1", "Player 2", "Score 1", "Score 2"}
	standingsHeader = []string{
		"Rank", "Player", "Points", "Games Played", "Wins", "Losses",
		"Win %", "Hoops Scored", "Hoops Conceded", "Net Hoops",
	}
)

// Writes the match log as CSV with one row per match
func WriteMatchesCSV(w io.Writer, matches []core.Match) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(matchesHeader); err != nil {
		return err
	}
	for _, m := range matches {
		record := []string{
			strconv.Itoa(m.Round),
			m.Player1,
			m.Player2,
			strconv.Itoa(m.Score1),
			strconv.Itoa(m.Score2),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteStandingsCSV(w io.Writer, standings core.Standings) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(standingsHeader); err != nil {
		return err
	}
	for _, row := range standings {
		if err := writer.Write(standingRecord(row)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func standingRecord(row core.Standing) []string {
	return []string{
		strconv.Itoa(row.Rank),
		row.Name,
		fmt.Sprintf("%.1f", row.Points),
		strconv.Itoa(row.GamesPlayed),
		strconv.Itoa(row.Wins),
		strconv.Itoa(row.Losses),
		fmt.Sprintf("%.2f", row.WinPercentage),
		strconv.Itoa(row.HoopsScored),
		strconv.Itoa(row.HoopsConceded),
		strconv.Itoa(row.NetHoops),
	}
}
