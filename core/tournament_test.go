package core

import (
	"errors"
	"slices"
	"testing"
)

func TestNewTournamentErrors(t *testing.T) {
	_, err := NewTournament("t", nil, 3, Swiss)
	if !errors.Is(err, ErrEmptyRoster) {
		t.Fatal("A tournament without competitors was created")
	}
	_, err = NewTournament("t", []string{"A"}, 3, Swiss)
	if !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatal("A tournament with one competitor was created")
	}
	_, err = NewTournament("t", []string{"A", "B"}, 0, Swiss)
	if !errors.Is(err, ErrInvalidRoundCount) {
		t.Fatal("A tournament without rounds was created")
	}
	_, err = NewTournament("t", []string{"A", "B", "A"}, 1, Swiss)
	if !errors.Is(err, ErrDuplicateCompetitorName) {
		t.Fatal("A tournament with duplicate names was created")
	}
	_, err = NewTournament("t", []string{"A", "B"}, 1, PairingMethod(5))
	if !errors.Is(err, ErrUnknownPairingMethod) {
		t.Fatal("A tournament with an unknown pairing method was created")
	}
}

// Run through a 4-player Swiss tournament with two rounds
func TestSwissTournament(t *testing.T) {
	tournament := newTestTournament(t, []string{"A", "B", "C", "D"}, 2, Swiss)

	if tournament.State() != StateCreated || tournament.CurrentRound() != 1 {
		t.Fatal("A new tournament is not in round 1")
	}
	if len(tournament.CurrentStandings()) != 4 {
		t.Fatal("The live standings do not list all competitors")
	}
	if tournament.LatestStandings() != nil {
		t.Fatal("A new tournament has a standings snapshot")
	}

	_, err := tournament.SubmitRoundResults(nil)
	if !errors.Is(err, ErrRoundNotEntered) {
		t.Fatal("Results were accepted before the round was paired")
	}

	round1, err := tournament.EnterRound()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(round1.Pairs, []Pair{{"A", "B"}, {"C", "D"}}) || round1.Round != 1 {
		t.Fatalf("The first round is paired as %v", round1.Pairs)
	}
	if tournament.State() != StateRoundPending {
		t.Fatal("The tournament is not waiting for results")
	}

	// Entering again returns the cached pairing and does not
	// record the pairs again
	again, err := tournament.EnterRound()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(again.Pairs, round1.Pairs) {
		t.Fatal("Entering the round twice produced a different pairing")
	}
	if tournament.Opponents().NumPairs() != 2 {
		t.Fatal("The opponent graph does not have the two pairs of round 1")
	}

	standings, err := tournament.SubmitRoundResults([]Result{
		{Player1: "B", Player2: "A", Score1: 3, Score2: 7},
		{Player1: "C", Player2: "D", Score1: 7, Score2: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(standings.Names(), []string{"A", "C", "D", "B"}) {
		t.Fatalf("The standings after round 1 are %v", standings.Names())
	}
	if tournament.State() != StateRoundComplete || tournament.CurrentRound() != 2 {
		t.Fatal("The tournament did not advance to round 2")
	}

	matches := tournament.Matches()
	if matches[0] != (Match{Round: 1, Player1: "A", Player2: "B", Score1: 7, Score2: 3}) {
		t.Fatalf("The reversed result was logged as %v", matches[0])
	}

	round2, err := tournament.EnterRound()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(round2.Pairs, []Pair{{"A", "C"}, {"D", "B"}}) {
		t.Fatalf("The second round is paired as %v", round2.Pairs)
	}

	standings, err = tournament.SubmitRoundResults([]Result{
		{Player1: "A", Player2: "C", Score1: 7, Score2: 6},
		{Player1: "D", Player2: "B", Score1: 7, Score2: 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	// D ranks before C by net hoops because the conceded hoops
	// are those of the last match only
	if !slices.Equal(standings.Names(), []string{"A", "D", "C", "B"}) {
		t.Fatalf("The standings after round 2 are %v", standings.Names())
	}
	a, _ := standings.Find("A")
	if a.Points != 2 || a.HoopsScored != 14 || a.HoopsConceded != 6 || a.NetHoops != 8 {
		t.Fatalf("A has the wrong statistics %+v", a)
	}

	if !tournament.IsFinished() || tournament.State() != StateFinished {
		t.Fatal("The tournament is not finished after the last round")
	}
	if tournament.CurrentRound() != tournament.TotalRounds()+1 {
		t.Fatal("The round counter of a finished tournament is not one past the last round")
	}
	if len(tournament.StandingsHistory()) != 2 {
		t.Fatal("There is not one standings snapshot per round")
	}

	_, err = tournament.EnterRound()
	if !errors.Is(err, ErrTournamentFinished) {
		t.Fatal("A round of a finished tournament was entered")
	}
	_, err = tournament.SubmitRoundResults(nil)
	if !errors.Is(err, ErrTournamentFinished) {
		t.Fatal("Results of a finished tournament were accepted")
	}
}

func TestSubmitInvalidResults(t *testing.T) {
	tournament := newTestTournament(t, []string{"A", "B", "C", "D"}, 1, Swiss)
	if _, err := tournament.EnterRound(); err != nil {
		t.Fatal(err)
	}

	_, err := tournament.SubmitRoundResults([]Result{
		{Player1: "A", Player2: "B", Score1: 7, Score2: 3},
		{Player1: "C", Player2: "D", Score1: 7, Score2: 7},
	})
	if !errors.Is(err, ErrInvalidScore) {
		t.Fatal("A 7-7 result was accepted")
	}

	_, err = tournament.SubmitRoundResults([]Result{
		{Player1: "A", Player2: "B", Score1: 7, Score2: 3},
	})
	if !errors.Is(err, ErrResultsMismatch) {
		t.Fatal("A result was missing but the round was accepted")
	}

	_, err = tournament.SubmitRoundResults([]Result{
		{Player1: "A", Player2: "C", Score1: 7, Score2: 3},
		{Player1: "B", Player2: "D", Score1: 7, Score2: 3},
	})
	if !errors.Is(err, ErrResultsMismatch) {
		t.Fatal("Results of unpaired competitors were accepted")
	}

	_, err = tournament.SubmitRoundResults([]Result{
		{Player1: "A", Player2: "B", Score1: 7, Score2: 3},
		{Player1: "B", Player2: "A", Score1: 7, Score2: 3},
	})
	if !errors.Is(err, ErrResultsMismatch) {
		t.Fatal("A pair reported twice was accepted")
	}

	// Nothing was applied
	for _, c := range tournament.Roster().Competitors() {
		if c.GamesPlayed != 0 {
			t.Fatalf("A rejected round changed the statistics of %v", c)
		}
	}
	if len(tournament.Matches()) != 0 || tournament.State() != StateRoundPending {
		t.Fatal("A rejected round changed the tournament")
	}
}

func TestTournamentByes(t *testing.T) {
	tournament := newTestTournament(t, []string{"A", "B", "C"}, 3, Swiss)

	byes := make(map[string]bool)
	for !tournament.IsFinished() {
		pairing, err := tournament.EnterRound()
		if err != nil {
			t.Fatal(err)
		}
		if pairing.Bye == "" || len(pairing.Pairs) != 1 {
			t.Fatal("A round of three competitors has no bye")
		}
		byes[pairing.Bye] = true

		pair := pairing.Pairs[0]
		_, err = tournament.SubmitRoundResults([]Result{
			{Player1: pair.Player1, Player2: pair.Player2, Score1: 7, Score2: 1},
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if len(tournament.Byes()) != 3 {
		t.Fatal("The byes of the rounds were not recorded")
	}
	// Every pair is fresh in the three rounds so everyone
	// sits out once
	if len(byes) != 3 {
		t.Fatalf("The byes were %v", tournament.Byes())
	}

	for _, row := range tournament.CurrentStandings() {
		if row.GamesPlayed != 2 {
			t.Fatalf("%s played %d games instead of 2", row.Name, row.GamesPlayed)
		}
	}
}

func TestRecomputeFromEditedLog(t *testing.T) {
	tournament := newTestTournament(t, []string{"A", "B", "C", "D"}, 2, Swiss)
	if _, err := tournament.EnterRound(); err != nil {
		t.Fatal(err)
	}
	_, err := tournament.SubmitRoundResults([]Result{
		{Player1: "A", Player2: "B", Score1: 7, Score2: 3},
		{Player1: "C", Player2: "D", Score1: 7, Score2: 5},
	})
	if err != nil {
		t.Fatal(err)
	}

	edited := tournament.Matches()
	edited[0].Score1, edited[0].Score2 = 2, 7

	first, err := tournament.RecomputeFromEditedLog(edited)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Name != "B" {
		t.Fatalf("The corrected winner B does not lead: %v", first.Names())
	}

	second, err := tournament.RecomputeFromEditedLog(edited)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, second) {
		t.Fatal("Recomputing the same log twice gave different standings")
	}

	if tournament.CurrentRound() != 2 {
		t.Fatal("The recomputation changed the round counter")
	}
	if len(tournament.StandingsHistory()) != 3 {
		t.Fatal("The recomputation did not record a standings snapshot")
	}

	invalid := tournament.Matches()
	invalid[1].Score2 = 7
	_, err = tournament.RecomputeFromEditedLog(invalid)
	if !errors.Is(err, ErrInvalidScore) {
		t.Fatal("An edited log with a 7-7 score was accepted")
	}
	if !slices.Equal(tournament.CurrentStandings(), second) {
		t.Fatal("A rejected edit changed the standings")
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	roster, err := NewRoster("A", "B", "C")
	if err != nil {
		t.Fatal(err)
	}
	log := []Match{
		{Round: 1, Player1: "A", Player2: "B", Score1: 7, Score2: 2},
		{Round: 2, Player1: "B", Player2: "C", Score1: 7, Score2: 6},
		{Round: 3, Player1: "C", Player2: "A", Score1: 7, Score2: 4},
	}

	first, err := Recalculate(roster, log)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Recalculate(roster, log)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, second) {
		t.Fatal("Replaying the log twice gave different standings")
	}
	for _, row := range first {
		if row.Points != 1 || row.GamesPlayed != 2 {
			t.Fatalf("%s has the wrong statistics %+v", row.Name, row)
		}
	}
}

func TestRandomTournament(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F"}
	tournament := newTestTournament(t, names, 5, Random)

	for !tournament.IsFinished() {
		pairing, err := tournament.EnterRound()
		if err != nil {
			t.Fatal(err)
		}
		checkPairingCovers(t, pairing, names)

		results := make([]Result, 0, len(pairing.Pairs))
		for _, p := range pairing.Pairs {
			results = append(results, Result{Player1: p.Player1, Player2: p.Player2, Score1: 7, Score2: 4})
		}
		if _, err := tournament.SubmitRoundResults(results); err != nil {
			t.Fatal(err)
		}
	}

	if len(tournament.Matches()) != 15 {
		t.Fatalf("%d matches were logged instead of 15", len(tournament.Matches()))
	}
	for _, row := range tournament.CurrentStandings() {
		if row.GamesPlayed != 5 {
			t.Fatalf("%s played %d games instead of 5", row.Name, row.GamesPlayed)
		}
	}
}
