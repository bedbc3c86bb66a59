package core

// Recomputes the statistics of the roster by replaying the
// match log from zero and returns the resulting standings.
//
// Every match is validated first. When one is invalid the
// error is returned and the roster is left unchanged.
// Replaying the same log always yields the same standings
// independently of the previous statistics.
func Recalculate(roster *Roster, log []Match) (Standings, error) {
	for _, m := range log {
		if err := roster.validateMatch(m); err != nil {
			return nil, err
		}
	}

	roster.resetStats()
	for _, m := range log {
		roster.applyMatch(m)
	}

	return NewStandings(roster.Competitors()), nil
}
