package core

import (
	"errors"
	"fmt"
)

// The number of hoops that wins a match
const WinningHoops = 7

var (
	ErrInvalidScore = errors.New("invalid score: must be first to 7")
	ErrSelfMatch    = errors.New("a competitor cannot play against themselves")
)

// A played match as it is stored in the match log.
type Match struct {
	Round   int    `json:"round"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Score1  int    `json:"score1"`
	Score2  int    `json:"score2"`
}

// Returns true when the first player won.
// Errors with ErrInvalidScore when the score has no valid winner.
func (m Match) Player1Won() (bool, error) {
	return ValidateScore(m.Score1, m.Score2)
}

// Returns the name of the winner or an empty string
// when the score is invalid
func (m Match) Winner() string {
	won, err := m.Player1Won()
	switch {
	case err != nil:
		return ""
	case won:
		return m.Player1
	default:
		return m.Player2
	}
}

// Returns true when the match was played between a and b
// in any order
func (m Match) Between(a, b string) bool {
	return (m.Player1 == a && m.Player2 == b) || (m.Player1 == b && m.Player2 == a)
}

func (m Match) String() string {
	return fmt.Sprintf("R%d %s vs. %s\t%d - %d", m.Round, m.Player1, m.Player2, m.Score1, m.Score2)
}

// Validates a reported score.
//
// A score is valid when exactly one side has WinningHoops and
// the other side has less. Negative hoops are invalid.
// Returns true when the first side won.
func ValidateScore(score1, score2 int) (bool, error) {
	switch {
	case score1 < 0 || score2 < 0:
		return false, ErrInvalidScore
	case score1 == WinningHoops && score2 < WinningHoops:
		return true, nil
	case score2 == WinningHoops && score1 < WinningHoops:
		return false, nil
	}
	return false, ErrInvalidScore
}

// Checks the score and the names of the match against the roster
// without changing anything.
func (r *Roster) validateMatch(m Match) error {
	if _, err := m.Player1Won(); err != nil {
		return fmt.Errorf("%w (round %d, %s vs. %s: %d-%d)", err, m.Round, m.Player1, m.Player2, m.Score1, m.Score2)
	}
	for _, name := range [2]string{m.Player1, m.Player2} {
		if !r.Contains(name) {
			return fmt.Errorf("%w: %q", ErrUnknownCompetitor, name)
		}
	}
	if m.Player1 == m.Player2 {
		return fmt.Errorf("%w: %q", ErrSelfMatch, m.Player1)
	}
	return nil
}

// Validates the match and applies its result to the statistics
// of both competitors. Nothing changes when the match is invalid.
func (r *Roster) ApplyMatch(m Match) error {
	if err := r.validateMatch(m); err != nil {
		return err
	}
	r.applyMatch(m)
	return nil
}

// Applies an already validated match
func (r *Roster) applyMatch(m Match) {
	player1Won, _ := m.Player1Won()
	c1 := r.index[m.Player1]
	c2 := r.index[m.Player2]
	c1.record(m.Score1, m.Score2, player1Won)
	c2.record(m.Score2, m.Score1, !player1Won)
}
