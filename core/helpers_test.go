package core

import "testing"

var fixtureNames = []string{"A", "B", "C", "D", "E"}

// Returns a roster of A-E and an opponent graph in which every
// pair except A and B already met
func fixtureABUnplayed(t *testing.T) (*Roster, *OpponentGraph) {
	t.Helper()

	roster, err := NewRoster(fixtureNames...)
	if err != nil {
		t.Fatal(err)
	}

	opponents := NewOpponentGraph(fixtureNames...)
	for i, a := range fixtureNames {
		for _, b := range fixtureNames[i+1:] {
			if a == "A" && b == "B" {
				continue
			}
			opponents.Record(a, b)
		}
	}

	return roster, opponents
}

// Checks that every competitor is in exactly one pair or is the bye
func checkPairingCovers(t *testing.T, pairing *Pairing, names []string) {
	t.Helper()

	seen := make(map[string]int)
	for _, name := range pairing.Names() {
		seen[name] += 1
	}
	if len(seen) != len(names) {
		t.Fatalf("The pairing %v does not contain all %d competitors", pairing.Names(), len(names))
	}
	for _, name := range names {
		if seen[name] != 1 {
			t.Fatalf("The competitor %s appears %d times in the pairing", name, seen[name])
		}
	}
	if (len(names)%2 == 1) != (pairing.Bye != "") {
		t.Fatalf("The pairing of %d competitors has the bye %q", len(names), pairing.Bye)
	}
}

func newTestTournament(t *testing.T, names []string, rounds int, method PairingMethod) *Tournament {
	t.Helper()

	tournament, err := NewTournament("test", names, rounds, method, WithRand(NewSeededRand(1)))
	if err != nil {
		t.Fatal(err)
	}
	return tournament
}
