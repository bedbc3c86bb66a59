// Package service runs the engine operations against stored
// tournaments.
package service

import (
	"context"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/goswiss/core"
	"github.com/ezBadminton/goswiss/store"
)

// The input of a new tournament
type CreateInput struct {
	Name          string             `json:"name" yaml:"name"`
	Players       []string           `json:"players" yaml:"players"`
	Rounds        int                `json:"num_rounds" yaml:"num_rounds"`
	PairingMethod core.PairingMethod `json:"pairing_method" yaml:"pairing_method"`
}

// The Manager loads a tournament, applies one operation and
// saves it again. Operations on the same tournament are
// serialized, operations on different tournaments run
// concurrently.
//
// A failed operation saves nothing.
type Manager struct {
	store  store.Store
	logger logrus.FieldLogger

	bruteForceLimit int

	// Seeds the random source of every operation when set
	rngMu sync.Mutex
	rng   *rand.Rand

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

type Option func(m *Manager)

func WithBruteForceLimit(limit int) Option {
	return func(m *Manager) {
		m.bruteForceLimit = limit
	}
}

// Makes random pairings reproducible for a sequence of
// operations
func WithSeed(seed int64) Option {
	return func(m *Manager) {
		m.rng = core.NewSeededRand(seed)
	}
}

func NewManager(s store.Store, logger logrus.FieldLogger, options ...Option) *Manager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	m := &Manager{
		store:           s,
		logger:          logger,
		bruteForceLimit: core.DefaultBruteForceLimit,
		locks:           make(map[string]*sync.Mutex),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Manager) lock(id string) func() {
	m.locksMu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	m.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// The engine options of one operation
func (m *Manager) engineOptions(id string) []core.Option {
	options := []core.Option{
		core.WithLogger(m.logger.WithField("id", id)),
		core.WithBruteForceLimit(m.bruteForceLimit),
	}

	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	if m.rng != nil {
		options = append(options, core.WithRand(core.NewSeededRand(m.rng.Int63())))
	}
	return options
}

func (m *Manager) load(ctx context.Context, id string) (*core.Tournament, error) {
	snapshot, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return core.Restore(snapshot, m.engineOptions(id)...)
}

// Runs the operation on the loaded tournament and saves it
// when the operation succeeds
func (m *Manager) update(ctx context.Context, id string, operation func(t *core.Tournament) error) error {
	unlock := m.lock(id)
	defer unlock()

	tournament, err := m.load(ctx, id)
	if err != nil {
		return err
	}
	if err := operation(tournament); err != nil {
		return err
	}
	return m.store.Save(ctx, id, tournament.Snapshot())
}

// Runs the read-only operation on the loaded tournament
func (m *Manager) view(ctx context.Context, id string, operation func(t *core.Tournament) error) error {
	unlock := m.lock(id)
	defer unlock()

	tournament, err := m.load(ctx, id)
	if err != nil {
		return err
	}
	return operation(tournament)
}

// Creates and stores a new tournament
func (m *Manager) Create(ctx context.Context, input CreateInput) (string, *core.Tournament, error) {
	tournament, err := core.NewTournament(
		input.Name,
		input.Players,
		input.Rounds,
		input.PairingMethod,
		m.engineOptions("")...,
	)
	if err != nil {
		return "", nil, err
	}

	id, err := m.store.Create(ctx, tournament.Snapshot())
	if err != nil {
		return "", nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"id":      id,
		"name":    input.Name,
		"players": len(input.Players),
		"rounds":  input.Rounds,
		"method":  input.PairingMethod.String(),
	}).Info("tournament created")

	return id, tournament, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*core.Tournament, error) {
	var tournament *core.Tournament
	err := m.view(ctx, id, func(t *core.Tournament) error {
		tournament = t
		return nil
	})
	return tournament, err
}

func (m *Manager) List(ctx context.Context) ([]store.Summary, error) {
	return m.store.List(ctx)
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.WithField("id", id).Info("tournament deleted")
	return nil
}

// Enters the current round of the tournament and returns
// its pairing. The pairing is saved with the tournament
// so that entering again returns the same pairing.
func (m *Manager) EnterRound(ctx context.Context, id string) (*core.Pairing, error) {
	var pairing *core.Pairing
	err := m.update(ctx, id, func(t *core.Tournament) error {
		var err error
		pairing, err = t.EnterRound()
		return err
	})
	return pairing, err
}

func (m *Manager) SubmitRoundResults(ctx context.Context, id string, results []core.Result) (core.Standings, error) {
	var standings core.Standings
	err := m.update(ctx, id, func(t *core.Tournament) error {
		var err error
		standings, err = t.SubmitRoundResults(results)
		return err
	})
	return standings, err
}

func (m *Manager) RecomputeFromEditedLog(ctx context.Context, id string, matches []core.Match) (core.Standings, error) {
	var standings core.Standings
	err := m.update(ctx, id, func(t *core.Tournament) error {
		var err error
		standings, err = t.RecomputeFromEditedLog(matches)
		return err
	})
	return standings, err
}

func (m *Manager) Standings(ctx context.Context, id string) (core.Standings, error) {
	var standings core.Standings
	err := m.view(ctx, id, func(t *core.Tournament) error {
		standings = t.CurrentStandings()
		return nil
	})
	return standings, err
}

func (m *Manager) HeadToHead(ctx context.Context, id string) (*core.HeadToHead, error) {
	var table *core.HeadToHead
	err := m.view(ctx, id, func(t *core.Tournament) error {
		table = t.HeadToHead()
		return nil
	})
	return table, err
}

func (m *Manager) Matches(ctx context.Context, id string) ([]core.Match, error) {
	var matches []core.Match
	err := m.view(ctx, id, func(t *core.Tournament) error {
		matches = t.Matches()
		return nil
	})
	return matches, err
}
