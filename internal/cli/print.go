package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ezBadminton/goswiss/core"
	"github.com/ezBadminton/goswiss/store"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printSummaries(w io.Writer, summaries []store.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No tournaments yet.")
		return
	}

	table := newTable(w)
	fmt.Fprintln(table, "ID\tNAME\tMETHOD\tROUND\tCREATED")
	for _, s := range summaries {
		round := fmt.Sprintf("%d/%d", s.CurrentRound, s.TotalRounds)
		if s.Finished() {
			round = "finished"
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.PairingMethod, round, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	table.Flush()
}

func printTournament(w io.Writer, t *core.Tournament) {
	fmt.Fprintf(w, "\x1b[32m%s\x1b[0m (%s pairing)\n", t.Name, t.Method())
	if t.IsFinished() {
		fmt.Fprintf(w, "Finished after %d rounds\n", t.TotalRounds())
		return
	}
	fmt.Fprintf(w, "Round %d of %d: %s\n", t.CurrentRound(), t.TotalRounds(), t.State())
}

func printPairing(w io.Writer, pairing *core.Pairing) {
	fmt.Fprintf(w, "Pairing of round %d:\n", pairing.Round)
	table := newTable(w)
	for i, p := range pairing.Pairs {
		fmt.Fprintf(table, "  %d.\t%s\tvs.\t%s\n", i+1, p.Player1, p.Player2)
	}
	table.Flush()
	if pairing.Bye != "" {
		fmt.Fprintf(w, "  Bye: %s\n", pairing.Bye)
	}
	if pairing.HasRepeat {
		fmt.Fprintf(w, "  \x1b[33m%d repeated pair(s)\x1b[0m\n", pairing.Repeats)
	}
}

func printStandings(w io.Writer, standings core.Standings) {
	table := newTable(w)
	fmt.Fprintln(table, "#\tPLAYER\tPTS\tGP\tW\tL\tWIN%\tHS\tHC\tNET")
	for _, row := range standings {
		fmt.Fprintf(table, "%d\t%s\t%.1f\t%d\t%d\t%d\t%.2f\t%d\t%d\t%+d\n",
			row.Rank, row.Name, row.Points, row.GamesPlayed, row.Wins, row.Losses,
			row.WinPercentage, row.HoopsScored, row.HoopsConceded, row.NetHoops)
	}
	table.Flush()
}

func printHeadToHead(w io.Writer, h2h *core.HeadToHead) {
	names := h2h.Names()
	table := newTable(w)
	fmt.Fprintf(table, "\t%s\n", strings.Join(names, "\t"))
	for i, cells := range h2h.Rows() {
		fmt.Fprintf(table, "%s\t%s\n", names[i], strings.Join(cells, "\t"))
	}
	table.Flush()
}
