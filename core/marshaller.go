package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

var ErrInvalidSnapshot = errors.New("invalid tournament snapshot")

// The persistable state of a Tournament.
//
// Opponents holds every recorded pair once. When it is nil the
// opponent graph is rebuilt from the match log and the pending
// pairing on Restore.
type Snapshot struct {
	Name          string        `json:"name"`
	CreatedAt     time.Time     `json:"created_date"`
	Players       []Competitor  `json:"players"`
	TotalRounds   int           `json:"num_rounds"`
	CurrentRound  int           `json:"current_round"`
	PairingMethod PairingMethod `json:"pairing_method"`
	Matches       []Match       `json:"matches"`
	Standings     []Standings   `json:"standings"`
	Byes          []string      `json:"byes"`
	Opponents     []Pair        `json:"opponents,omitempty"`
	Pending       *Pairing      `json:"pending,omitempty"`
}

func (t *Tournament) Snapshot() *Snapshot {
	players := make([]Competitor, 0, t.roster.Len())
	for _, c := range t.roster.competitors {
		players = append(players, *c)
	}

	s := &Snapshot{
		Name:          t.Name,
		CreatedAt:     t.CreatedAt,
		Players:       players,
		TotalRounds:   t.totalRounds,
		CurrentRound:  t.currentRound,
		PairingMethod: t.method,
		Matches:       t.Matches(),
		Standings:     t.StandingsHistory(),
		Byes:          t.Byes(),
		Opponents:     t.opponents.Pairs(),
	}
	if pending, ok := t.PendingPairing(); ok {
		s.Pending = pending
	}
	return s
}

func (t *Tournament) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Snapshot())
}

// Restores a tournament from its snapshot. The options apply
// as in NewTournament.
//
// The statistics of the players are taken as they are and not
// recomputed from the match log.
func Restore(s *Snapshot, options ...Option) (*Tournament, error) {
	if err := checkPairable(len(s.Players)); err != nil {
		return nil, err
	}
	if s.TotalRounds < 1 {
		return nil, ErrInvalidRoundCount
	}
	if s.CurrentRound < 1 || s.CurrentRound > s.TotalRounds+1 {
		return nil, fmt.Errorf("%w: current round %d of %d", ErrInvalidSnapshot, s.CurrentRound, s.TotalRounds)
	}
	if s.PairingMethod != Swiss && s.PairingMethod != Random {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPairingMethod, int(s.PairingMethod))
	}

	t := newTournament(s.Name, s.PairingMethod, options)
	t.CreatedAt = s.CreatedAt
	t.totalRounds = s.TotalRounds
	t.currentRound = s.CurrentRound

	t.roster = &Roster{
		competitors: make([]*Competitor, 0, len(s.Players)),
		index:       make(map[string]*Competitor, len(s.Players)),
	}
	for _, p := range s.Players {
		if err := t.roster.add(&p); err != nil {
			return nil, err
		}
	}

	for _, m := range s.Matches {
		if err := t.roster.validateMatch(m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
	}
	t.matches = slices.Clone(s.Matches)
	t.byes = slices.Clone(s.Byes)
	for _, standings := range s.Standings {
		t.standingsHistory = append(t.standingsHistory, slices.Clone(standings))
	}

	if s.Pending != nil {
		if s.Pending.Round != s.CurrentRound {
			return nil, fmt.Errorf(
				"%w: pending pairing of round %d in round %d",
				ErrInvalidSnapshot, s.Pending.Round, s.CurrentRound,
			)
		}
		for _, name := range s.Pending.Names() {
			if !t.roster.Contains(name) {
				return nil, fmt.Errorf("%w: %w: %q", ErrInvalidSnapshot, ErrUnknownCompetitor, name)
			}
		}
		t.pairings[s.CurrentRound] = s.Pending.clone()
	}

	t.opponents = NewOpponentGraph(t.roster.Names()...)
	if s.Opponents != nil {
		for _, p := range s.Opponents {
			if !t.roster.Contains(p.Player1) || !t.roster.Contains(p.Player2) {
				return nil, fmt.Errorf("%w: %w: %s", ErrInvalidSnapshot, ErrUnknownCompetitor, p)
			}
			t.opponents.Record(p.Player1, p.Player2)
		}
	} else {
		for _, m := range t.matches {
			t.opponents.Record(m.Player1, m.Player2)
		}
		if s.Pending != nil {
			for _, p := range s.Pending.Pairs {
				t.opponents.Record(p.Player1, p.Player2)
			}
		}
	}

	return t, nil
}
