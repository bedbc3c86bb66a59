package core

import (
	"cmp"
	"math"
	"slices"
)

// Compares two competitors by their standing.
// The better competitor compares as less so that sorting
// ascending yields the best competitor first.
//
// The criteria in descending priority are:
//   - cumulative score
//   - net hoops
//   - hoops scored
//
// Competitors equal in all three criteria compare as equal.
// There is no further tie-break.
func CompareStanding(a, b *Competitor) int {
	return cmp.Or(
		cmp.Compare(b.Score, a.Score),
		cmp.Compare(b.NetHoops, a.NetHoops),
		cmp.Compare(b.HoopsScored, a.HoopsScored),
	)
}

// Returns a new slice with the competitors in ranking order.
// The sort is stable so competitors that are equal in all
// criteria keep the relative order that they have in the
// given slice.
func SortCompetitors(competitors []*Competitor) []*Competitor {
	sorted := slices.Clone(competitors)
	slices.SortStableFunc(sorted, CompareStanding)
	return sorted
}

// One row of a standings table
type Standing struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	GamesPlayed   int     `json:"games_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	HoopsScored   int     `json:"hoops_scored"`
	HoopsConceded int     `json:"hoops_conceded"`
	NetHoops      int     `json:"net_hoops"`
	Points        float64 `json:"points"`
	WinPercentage float64 `json:"win_percentage"`
}

// A standings table ordered by rank
type Standings []Standing

// Creates the standings table of the competitors.
// The ranks are 1-based and follow SortCompetitors.
func NewStandings(competitors []*Competitor) Standings {
	sorted := SortCompetitors(competitors)
	standings := make(Standings, 0, len(sorted))
	for i, c := range sorted {
		standings = append(standings, Standing{
			Rank:          i + 1,
			Name:          c.Name,
			GamesPlayed:   c.GamesPlayed,
			Wins:          c.Wins,
			Losses:        c.Losses,
			HoopsScored:   c.HoopsScored,
			HoopsConceded: c.HoopsConceded,
			NetHoops:      c.NetHoops,
			Points:        c.Score,
			WinPercentage: WinPercentage(c.Wins, c.GamesPlayed),
		})
	}
	return standings
}

// Returns wins/games*100 rounded to two decimal places
// or 0 when no games were played
func WinPercentage(wins, gamesPlayed int) float64 {
	if gamesPlayed == 0 {
		return 0
	}
	percentage := float64(wins) / float64(gamesPlayed) * 100
	return math.Round(percentage*100) / 100
}

// Returns the names in rank order
func (s Standings) Names() []string {
	names := make([]string, len(s))
	for i, row := range s {
		names[i] = row.Name
	}
	return names
}

// Returns the row of the named competitor
func (s Standings) Find(name string) (Standing, bool) {
	i := slices.IndexFunc(s, func(row Standing) bool { return row.Name == name })
	if i < 0 {
		return Standing{}, false
	}
	return s[i], true
}
