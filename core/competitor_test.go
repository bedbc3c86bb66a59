package core

import (
	"errors"
	"testing"
)

func TestNewRoster(t *testing.T) {
	roster, err := NewRoster("A", "B", "C")
	if err != nil {
		t.Fatal(err)
	}
	if roster.Len() != 3 {
		t.Fatal("The roster does not have 3 competitors")
	}
	names := roster.Names()
	if names[0] != "A" || names[1] != "B" || names[2] != "C" {
		t.Fatal("The roster did not keep the entry order")
	}
	if !roster.Contains("B") || roster.Contains("D") {
		t.Fatal("The roster lookup is wrong")
	}

	_, err = NewRoster("A", "B", "A")
	if !errors.Is(err, ErrDuplicateCompetitorName) {
		t.Fatal("A duplicate name was accepted")
	}

	_, err = NewRoster("A", "  ")
	if !errors.Is(err, ErrBlankCompetitorName) {
		t.Fatal("A blank name was accepted")
	}
}

func TestCheckPairable(t *testing.T) {
	if !errors.Is(checkPairable(0), ErrEmptyRoster) {
		t.Fatal("An empty roster is pairable")
	}
	if !errors.Is(checkPairable(1), ErrInsufficientPlayers) {
		t.Fatal("A single competitor is pairable")
	}
	if checkPairable(2) != nil {
		t.Fatal("Two competitors are not pairable")
	}
}
