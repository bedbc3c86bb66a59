package core

import (
	"errors"
	"testing"
)

func TestValidateScore(t *testing.T) {
	player1Won, err := ValidateScore(7, 5)
	if err != nil || !player1Won {
		t.Fatal("7-5 is not a win of the first side")
	}

	player1Won, err = ValidateScore(5, 7)
	if err != nil || player1Won {
		t.Fatal("5-7 is not a win of the second side")
	}

	player1Won, err = ValidateScore(7, 0)
	if err != nil || !player1Won {
		t.Fatal("7-0 is not a win of the first side")
	}

	invalid := [][2]int{{7, 7}, {6, 5}, {0, 0}, {8, 5}, {7, 8}, {-1, 7}, {7, -3}}
	for _, score := range invalid {
		_, err := ValidateScore(score[0], score[1])
		if !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("The score %d-%d was not rejected", score[0], score[1])
		}
	}
}

func TestApplyMatch(t *testing.T) {
	roster, err := NewRoster("A", "B")
	if err != nil {
		t.Fatal(err)
	}

	err = roster.ApplyMatch(Match{Round: 1, Player1: "A", Player2: "B", Score1: 7, Score2: 4})
	if err != nil {
		t.Fatal(err)
	}

	a, _ := roster.Get("A")
	b, _ := roster.Get("B")

	if a.Score != 1.0 || a.Wins != 1 || a.Losses != 0 || a.GamesPlayed != 1 {
		t.Fatalf("The winner has the wrong statistics: %v", a)
	}
	if b.Score != 0 || b.Wins != 0 || b.Losses != 1 || b.GamesPlayed != 1 {
		t.Fatalf("The loser has the wrong statistics: %v", b)
	}
	if a.HoopsScored != 7 || a.HoopsConceded != 4 || a.NetHoops != 3 {
		t.Fatalf("The winner has the wrong hoops: %v", a)
	}
	if b.HoopsScored != 4 || b.HoopsConceded != 7 || b.NetHoops != -3 {
		t.Fatalf("The loser has the wrong hoops: %v", b)
	}

	// The conceded hoops are replaced, not added up
	err = roster.ApplyMatch(Match{Round: 2, Player1: "B", Player2: "A", Score1: 7, Score2: 2})
	if err != nil {
		t.Fatal(err)
	}
	if a.HoopsScored != 9 || a.HoopsConceded != 7 || a.NetHoops != 2 {
		t.Fatalf("The conceded hoops of A were not replaced: %v", a)
	}
	if b.HoopsScored != 11 || b.HoopsConceded != 2 || b.NetHoops != 9 {
		t.Fatalf("The conceded hoops of B were not replaced: %v", b)
	}
	if a.Score != 1.0 || b.Score != 1.0 {
		t.Fatal("The scores were not updated by the second match")
	}
}

func TestApplyInvalidMatch(t *testing.T) {
	roster, err := NewRoster("A", "B")
	if err != nil {
		t.Fatal(err)
	}

	err = roster.ApplyMatch(Match{Round: 1, Player1: "A", Player2: "B", Score1: 7, Score2: 7})
	if !errors.Is(err, ErrInvalidScore) {
		t.Fatal("A 7-7 score was applied")
	}

	err = roster.ApplyMatch(Match{Round: 1, Player1: "A", Player2: "Z", Score1: 7, Score2: 1})
	if !errors.Is(err, ErrUnknownCompetitor) {
		t.Fatal("A match against an unknown competitor was applied")
	}

	err = roster.ApplyMatch(Match{Round: 1, Player1: "A", Player2: "A", Score1: 7, Score2: 1})
	if !errors.Is(err, ErrSelfMatch) {
		t.Fatal("A match of a competitor against itself was applied")
	}

	for _, c := range roster.Competitors() {
		if *c != (Competitor{Name: c.Name}) {
			t.Fatalf("An invalid match changed the statistics of %v", c)
		}
	}
}

func TestMatchWinner(t *testing.T) {
	m := Match{Player1: "A", Player2: "B", Score1: 3, Score2: 7}
	if m.Winner() != "B" {
		t.Fatal("The winner of a 3-7 match is not the second player")
	}
	if !m.Between("B", "A") || m.Between("A", "C") {
		t.Fatal("Between does not match the players in any order")
	}

	m.Score2 = 6
	if m.Winner() != "" {
		t.Fatal("A match with an invalid score has a winner")
	}
}
