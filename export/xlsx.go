package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ezBadminton/goswiss/core"
)

const StandingsSheet = "Final Standings"

// Writes the standings and the head-to-head table to one
// worksheet. The standings table starts at the top. The
// head-to-head table follows after one blank row with the
// competitors in standings order. All cells are centered.
func WriteStandingsXLSX(w io.Writer, standings core.Standings, matches []core.Match) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StandingsSheet); err != nil {
		return err
	}

	rows := make([][]any, 0, 2*len(standings)+3)

	rows = append(rows, toAny(standingsHeader))
	for _, row := range standings {
		rows = append(rows, []any{
			row.Rank, row.Name, row.Points, row.GamesPlayed, row.Wins, row.Losses,
			row.WinPercentage, row.HoopsScored, row.HoopsConceded, row.NetHoops,
		})
	}

	rows = append(rows, []any{})

	names := standings.Names()
	table := core.NewHeadToHead(names, matches)
	rows = append(rows, append([]any{"Head to Head"}, toAny(names)...))
	for i, cells := range table.Rows() {
		rows = append(rows, append([]any{names[i]}, toAny(cells)...))
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(StandingsSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := centerCells(f, len(rows), max(len(standingsHeader), len(names)+1)); err != nil {
		return err
	}

	return f.Write(w)
}

func centerCells(f *excelize.File, numRows, numColumns int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	bottomRight, err := excelize.CoordinatesToCellName(numColumns, numRows)
	if err != nil {
		return err
	}
	return f.SetCellStyle(StandingsSheet, "A1", bottomRight, style)
}

func toAny(values []string) []any {
	result := make([]any, len(values))
	for i, v := range values {
		result[i] = v
	}
	return result
}
