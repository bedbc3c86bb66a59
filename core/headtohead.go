package core

import (
	"encoding/json"
	"fmt"
	"slices"
)

const (
	// Marks a competitor's own cell
	HeadToHeadSelf = "-"
	// Marks a pair that did not play
	HeadToHeadUnplayed = ""
)

// The HeadToHead table holds the result of every pair from
// the perspective of both competitors.
//
// A cell reads "W 7-3" when the row competitor won 7 to 3
// against the column competitor and "L 3-7" in the mirrored
// cell. When a pair played more than once the latest
// match is shown.
type HeadToHead struct {
	names   []string
	results map[Pair]string
}

// Creates the table for the names (in the given order) from
// the match log. Matches with invalid scores are skipped.
func NewHeadToHead(names []string, matches []Match) *HeadToHead {
	h := &HeadToHead{
		names:   slices.Clone(names),
		results: make(map[Pair]string),
	}

	for _, m := range matches {
		player1Won, err := m.Player1Won()
		if err != nil {
			continue
		}
		result1, result2 := "L", "W"
		if player1Won {
			result1, result2 = "W", "L"
		}
		h.results[Pair{m.Player1, m.Player2}] = fmt.Sprintf("%s %d-%d", result1, m.Score1, m.Score2)
		h.results[Pair{m.Player2, m.Player1}] = fmt.Sprintf("%s %d-%d", result2, m.Score2, m.Score1)
	}

	return h
}

func (h *HeadToHead) Names() []string {
	return slices.Clone(h.names)
}

// Returns the cell of the row competitor against the
// column competitor
func (h *HeadToHead) Result(row, column string) string {
	if row == column {
		return HeadToHeadSelf
	}
	return h.results[Pair{row, column}]
}

// Returns the cells of the table row by row
func (h *HeadToHead) Rows() [][]string {
	rows := make([][]string, 0, len(h.names))
	for _, row := range h.names {
		cells := make([]string, 0, len(h.names))
		for _, column := range h.names {
			cells = append(cells, h.Result(row, column))
		}
		rows = append(rows, cells)
	}
	return rows
}

func (h *HeadToHead) MarshalJSON() ([]byte, error) {
	table := make(map[string]map[string]string, len(h.names))
	for _, row := range h.names {
		cells := make(map[string]string, len(h.names))
		for _, column := range h.names {
			cells[column] = h.Result(row, column)
		}
		table[row] = cells
	}
	return json.Marshal(map[string]any{
		"names": h.names,
		"table": table,
	})
}
