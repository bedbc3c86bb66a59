package core

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestSnapshotRestore(t *testing.T) {
	tournament := newTestTournament(t, []string{"A", "B", "C", "D", "E"}, 3, Swiss)

	round1, err := tournament.EnterRound()
	if err != nil {
		t.Fatal(err)
	}
	results := make([]Result, 0, len(round1.Pairs))
	for _, p := range round1.Pairs {
		results = append(results, Result{Player1: p.Player1, Player2: p.Player2, Score1: 7, Score2: 5})
	}
	if _, err := tournament.SubmitRoundResults(results); err != nil {
		t.Fatal(err)
	}
	round2, err := tournament.EnterRound()
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(tournament)
	if err != nil {
		t.Fatal(err)
	}
	snapshot := &Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		t.Fatal(err)
	}

	restored, err := Restore(snapshot)
	if err != nil {
		t.Fatal(err)
	}

	if restored.Name != "test" || restored.CurrentRound() != 2 || restored.TotalRounds() != 3 {
		t.Fatal("The restored tournament has the wrong progress")
	}
	if restored.State() != StateRoundPending {
		t.Fatal("The pending pairing was not restored")
	}
	if !slices.Equal(restored.Matches(), tournament.Matches()) {
		t.Fatal("The match log was not restored")
	}
	if !slices.Equal(restored.CurrentStandings(), tournament.CurrentStandings()) {
		t.Fatal("The standings were not restored")
	}
	if !slices.Equal(restored.Opponents().Pairs(), tournament.Opponents().Pairs()) {
		t.Fatal("The opponent graph was not restored")
	}

	// Entering the restored round returns the stored pairing
	// without recording its pairs again
	pending, err := restored.EnterRound()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(pending.Pairs, round2.Pairs) || pending.Bye != round2.Bye {
		t.Fatal("The restored round has a different pairing")
	}
	if restored.Opponents().NumPairs() != tournament.Opponents().NumPairs() {
		t.Fatal("Entering the restored round changed the opponent graph")
	}
}

func TestRestoreRebuildsOpponents(t *testing.T) {
	tournament := newTestTournament(t, []string{"A", "B", "C", "D"}, 2, Swiss)
	if _, err := tournament.EnterRound(); err != nil {
		t.Fatal(err)
	}
	_, err := tournament.SubmitRoundResults([]Result{
		{Player1: "A", Player2: "B", Score1: 7, Score2: 1},
		{Player1: "C", Player2: "D", Score1: 7, Score2: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tournament.EnterRound(); err != nil {
		t.Fatal(err)
	}

	snapshot := tournament.Snapshot()
	snapshot.Opponents = nil

	restored, err := Restore(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(restored.Opponents().Pairs(), tournament.Opponents().Pairs()) {
		t.Fatal("The opponent graph was not rebuilt from the matches and the pending pairing")
	}
}

func TestRestoreInvalidSnapshot(t *testing.T) {
	tournament := newTestTournament(t, []string{"A", "B"}, 1, Swiss)

	snapshot := tournament.Snapshot()
	snapshot.CurrentRound = 3
	if _, err := Restore(snapshot); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatal("A snapshot with an impossible round was restored")
	}

	snapshot = tournament.Snapshot()
	snapshot.Matches = []Match{{Round: 1, Player1: "A", Player2: "Z", Score1: 7, Score2: 0}}
	if _, err := Restore(snapshot); !errors.Is(err, ErrUnknownCompetitor) {
		t.Fatal("A snapshot with an unknown competitor was restored")
	}

	snapshot = tournament.Snapshot()
	snapshot.Players = append(snapshot.Players, Competitor{Name: "A"})
	if _, err := Restore(snapshot); !errors.Is(err, ErrDuplicateCompetitorName) {
		t.Fatal("A snapshot with duplicate names was restored")
	}
}
