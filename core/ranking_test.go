package core

import (
	"slices"
	"testing"
)

func TestStandingsOrder(t *testing.T) {
	competitors := []*Competitor{
		{Name: "A", Score: 2.0, NetHoops: 5},
		{Name: "B", Score: 2.0, NetHoops: 9},
		{Name: "C", Score: 1.0},
	}

	standings := NewStandings(competitors)
	if !slices.Equal(standings.Names(), []string{"B", "A", "C"}) {
		t.Fatalf("The standings are in the wrong order: %v", standings.Names())
	}
	for i, row := range standings {
		if row.Rank != i+1 {
			t.Fatal("The ranks are not 1-based and consecutive")
		}
	}

	// The given slice is not reordered
	if competitors[0].Name != "A" {
		t.Fatal("Sorting changed the order of the given competitors")
	}
}

func TestStandingsTieBreak(t *testing.T) {
	competitors := []*Competitor{
		{Name: "A", Score: 1.0, NetHoops: 2, HoopsScored: 9},
		{Name: "B", Score: 1.0, NetHoops: 2, HoopsScored: 12},
		{Name: "C", Score: 1.0, NetHoops: 2, HoopsScored: 9},
		{Name: "D", Score: 0.0, NetHoops: 20, HoopsScored: 30},
	}

	sorted := SortCompetitors(competitors)
	names := competitorNames(sorted)
	if !slices.Equal(names, []string{"B", "A", "C", "D"}) {
		t.Fatalf("The tie-break by hoops scored is wrong: %v", names)
	}

	if CompareStanding(competitors[0], competitors[2]) != 0 {
		t.Fatal("Competitors equal in all criteria do not compare as equal")
	}
}

func TestWinPercentage(t *testing.T) {
	if WinPercentage(0, 0) != 0 {
		t.Fatal("The win percentage without games is not 0")
	}
	if WinPercentage(1, 3) != 33.33 {
		t.Fatalf("The win percentage of 1/3 is %v", WinPercentage(1, 3))
	}
	if WinPercentage(2, 3) != 66.67 {
		t.Fatalf("The win percentage of 2/3 is %v", WinPercentage(2, 3))
	}
	if WinPercentage(4, 4) != 100 {
		t.Fatal("The win percentage of 4/4 is not 100")
	}
}

func TestStandingsFind(t *testing.T) {
	roster, err := NewRoster("A", "B")
	if err != nil {
		t.Fatal(err)
	}
	standings := NewStandings(roster.Competitors())

	row, ok := standings.Find("B")
	if !ok || row.Name != "B" || row.Rank != 2 {
		t.Fatal("The row of B was not found")
	}
	if _, ok := standings.Find("Z"); ok {
		t.Fatal("A row of an unknown competitor was found")
	}
}
