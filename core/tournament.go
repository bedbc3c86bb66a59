package core

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidRoundCount  = errors.New("the number of rounds must be at least 1")
	ErrTournamentFinished = errors.New("the tournament is finished")
	ErrRoundNotEntered    = errors.New("the current round has not been paired yet")
	ErrResultsMismatch    = errors.New("the results do not match the pairing of the round")
)

// The lifecycle state of a Tournament
type State int

const (
	// No round has been paired or played yet
	StateCreated State = iota
	// The current round is paired and waits for its results
	StateRoundPending
	// The previous round is complete and the current round
	// is not paired yet
	StateRoundComplete
	// All rounds are complete
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRoundPending:
		return "RoundPending"
	case StateRoundComplete:
		return "RoundComplete"
	case StateFinished:
		return "Finished"
	}
	return "Unknown"
}

// A reported score of one pair of a round
type Result struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Score1  int    `json:"score1"`
	Score2  int    `json:"score2"`
}

// A Tournament sequences the rounds of a Swiss or random
// paired competition.
//
// Each round is first entered which generates and caches its
// pairing and records the pairs in the opponent graph. Then
// the results of the round are submitted all at once which
// updates the statistics, records a standings snapshot and
// advances to the next round.
//
// A Tournament is not safe for concurrent use.
type Tournament struct {
	Name      string
	CreatedAt time.Time

	roster    *Roster
	opponents *OpponentGraph

	totalRounds  int
	currentRound int
	method       PairingMethod

	matches          []Match
	standingsHistory []Standings
	byes             []string

	// The cached pairings keyed by round number.
	// Only the current round can have an entry.
	pairings map[int]*Pairing

	generator *PairingGenerator
	logger    logrus.FieldLogger
}

type Option func(t *Tournament)

// Sets the random source of the Random pairing method
func WithRand(rng *rand.Rand) Option {
	return func(t *Tournament) {
		t.generator.Rng = rng
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(t *Tournament) {
		t.logger = logger
		t.generator.Logger = logger
	}
}

// Sets the roster size above which pairings are searched with
// the maximum matching instead of the enumeration.
// Zero or less always enumerates.
func WithBruteForceLimit(limit int) Option {
	return func(t *Tournament) {
		t.generator.BruteForceLimit = limit
	}
}

func newTournament(name string, method PairingMethod, options []Option) *Tournament {
	t := &Tournament{
		Name:         name,
		CreatedAt:    time.Now().UTC(),
		method:       method,
		currentRound: 1,
		pairings:     make(map[int]*Pairing),
		generator:    NewPairingGenerator(method, nil, nil),
		logger:       logrus.StandardLogger(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Creates a tournament for the named competitors.
//
// Errors with ErrEmptyRoster or ErrInsufficientPlayers when there
// are fewer than two names, with ErrDuplicateCompetitorName or
// ErrBlankCompetitorName for invalid names and with
// ErrInvalidRoundCount when totalRounds is less than 1.
func NewTournament(
	name string,
	names []string,
	totalRounds int,
	method PairingMethod,
	options ...Option,
) (*Tournament, error) {
	if err := checkPairable(len(names)); err != nil {
		return nil, err
	}
	if totalRounds < 1 {
		return nil, ErrInvalidRoundCount
	}
	if method != Swiss && method != Random {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPairingMethod, int(method))
	}

	roster, err := NewRoster(names...)
	if err != nil {
		return nil, err
	}

	t := newTournament(name, method, options)
	t.roster = roster
	t.opponents = NewOpponentGraph(names...)
	t.totalRounds = totalRounds

	return t, nil
}

func (t *Tournament) State() State {
	switch {
	case t.IsFinished():
		return StateFinished
	case t.pairings[t.currentRound] != nil:
		return StateRoundPending
	case t.currentRound == 1:
		return StateCreated
	}
	return StateRoundComplete
}

// Returns true when all rounds are complete
func (t *Tournament) IsFinished() bool {
	return t.currentRound > t.totalRounds
}

// Enters the current round and returns its pairing.
//
// The first call for a round generates the pairing and records
// its pairs in the opponent graph. Further calls return the
// cached pairing until the results of the round are submitted.
func (t *Tournament) EnterRound() (*Pairing, error) {
	if t.IsFinished() {
		return nil, ErrTournamentFinished
	}

	if pairing, ok := t.pairings[t.currentRound]; ok {
		return pairing.clone(), nil
	}

	pairing, err := t.generator.Generate(t.roster.Competitors(), t.opponents, true)
	if err != nil {
		return nil, err
	}
	pairing.Round = t.currentRound
	t.pairings[t.currentRound] = pairing

	t.log().WithFields(logrus.Fields{
		"round":      t.currentRound,
		"pairs":      len(pairing.Pairs),
		"bye":        pairing.Bye,
		"has_repeat": pairing.HasRepeat,
	}).Info("round paired")

	return pairing.clone(), nil
}

// Returns the cached pairing of the current round
func (t *Tournament) PendingPairing() (*Pairing, bool) {
	pairing, ok := t.pairings[t.currentRound]
	if !ok {
		return nil, false
	}
	return pairing.clone(), true
}

// Submits the results of the current round.
//
// There has to be exactly one result for each pair of the
// round's pairing. All results are validated before any of
// them is applied so that an invalid score leaves the
// tournament unchanged.
//
// On success the statistics are updated, the matches are
// logged, the round's bye and a new standings snapshot are
// recorded and the tournament advances to the next round.
func (t *Tournament) SubmitRoundResults(results []Result) (Standings, error) {
	if t.IsFinished() {
		return nil, ErrTournamentFinished
	}
	pairing, ok := t.pairings[t.currentRound]
	if !ok {
		return nil, ErrRoundNotEntered
	}

	matches, err := t.roundMatches(pairing, results)
	if err != nil {
		return nil, err
	}

	for _, m := range matches {
		t.roster.applyMatch(m)
	}
	t.matches = append(t.matches, matches...)
	t.byes = append(t.byes, pairing.Bye)

	standings := NewStandings(t.roster.Competitors())
	t.standingsHistory = append(t.standingsHistory, standings)

	delete(t.pairings, t.currentRound)
	t.currentRound += 1

	t.log().WithFields(logrus.Fields{
		"round":    t.currentRound - 1,
		"matches":  len(matches),
		"finished": t.IsFinished(),
	}).Info("round results submitted")

	return slices.Clone(standings), nil
}

// Matches the results to the pairs of the pairing and validates
// them. The matches are in the order of the pairs.
func (t *Tournament) roundMatches(pairing *Pairing, results []Result) ([]Match, error) {
	if len(results) != len(pairing.Pairs) {
		return nil, fmt.Errorf(
			"%w: %d results for %d pairs",
			ErrResultsMismatch, len(results), len(pairing.Pairs),
		)
	}

	matches := make([]Match, len(pairing.Pairs))
	reported := make([]bool, len(pairing.Pairs))
	for _, r := range results {
		i := slices.IndexFunc(pairing.Pairs, func(p Pair) bool {
			return p.Contains(r.Player1) && p.Contains(r.Player2) && r.Player1 != r.Player2
		})
		if i < 0 {
			return nil, fmt.Errorf(
				"%w: %s vs. %s is not paired in round %d",
				ErrResultsMismatch, r.Player1, r.Player2, pairing.Round,
			)
		}
		if reported[i] {
			return nil, fmt.Errorf("%w: %s reported twice", ErrResultsMismatch, pairing.Pairs[i])
		}

		pair := pairing.Pairs[i]
		m := Match{
			Round:   pairing.Round,
			Player1: pair.Player1,
			Player2: pair.Player2,
			Score1:  r.Score1,
			Score2:  r.Score2,
		}
		if r.Player1 != pair.Player1 {
			m.Score1, m.Score2 = r.Score2, r.Score1
		}
		if err := t.roster.validateMatch(m); err != nil {
			return nil, err
		}

		matches[i] = m
		reported[i] = true
	}

	return matches, nil
}

// Replaces the match log with the edited log and recomputes all
// statistics from scratch. A new standings snapshot is recorded.
//
// The round counter, the bye history and the cached pairing are
// not touched. Pairs of the edited log that are not in the
// opponent graph yet are added to it.
//
// Nothing changes when one of the edited matches is invalid.
func (t *Tournament) RecomputeFromEditedLog(edited []Match) (Standings, error) {
	standings, err := Recalculate(t.roster, edited)
	if err != nil {
		return nil, err
	}

	for _, m := range edited {
		t.opponents.Record(m.Player1, m.Player2)
	}
	t.matches = slices.Clone(edited)
	t.standingsHistory = append(t.standingsHistory, standings)

	t.log().WithField("matches", len(edited)).Info("standings recomputed from edited match log")

	return slices.Clone(standings), nil
}

// Returns the latest standings snapshot or the live standings
// of the roster when no snapshot exists yet
func (t *Tournament) CurrentStandings() Standings {
	if len(t.standingsHistory) == 0 {
		return NewStandings(t.roster.Competitors())
	}
	return slices.Clone(t.standingsHistory[len(t.standingsHistory)-1])
}

// Returns the latest standings snapshot or nil
func (t *Tournament) LatestStandings() Standings {
	if len(t.standingsHistory) == 0 {
		return nil
	}
	return slices.Clone(t.standingsHistory[len(t.standingsHistory)-1])
}

func (t *Tournament) StandingsHistory() []Standings {
	history := make([]Standings, len(t.standingsHistory))
	for i, s := range t.standingsHistory {
		history[i] = slices.Clone(s)
	}
	return history
}

// Returns the match log in the order the matches were played
func (t *Tournament) Matches() []Match {
	return slices.Clone(t.matches)
}

// Returns the bye of each completed round.
// Rounds without a bye have an empty string.
func (t *Tournament) Byes() []string {
	return slices.Clone(t.byes)
}

func (t *Tournament) HeadToHead() *HeadToHead {
	return NewHeadToHead(t.roster.Names(), t.matches)
}

func (t *Tournament) Roster() *Roster {
	return t.roster
}

func (t *Tournament) Opponents() *OpponentGraph {
	return t.opponents
}

func (t *Tournament) Method() PairingMethod {
	return t.method
}

func (t *Tournament) TotalRounds() int {
	return t.totalRounds
}

// Returns the 1-based number of the current round.
// It is TotalRounds()+1 when the tournament is finished.
func (t *Tournament) CurrentRound() int {
	return t.currentRound
}

func (t *Tournament) log() logrus.FieldLogger {
	return t.logger.WithField("tournament", t.Name)
}
