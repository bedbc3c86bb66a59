// Package store persists tournament snapshots.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ezBadminton/goswiss/core"
)

var ErrTournamentNotFound = errors.New("tournament not found")

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// A Store keeps the snapshots of many tournaments by id.
//
// Save replaces the whole snapshot. Load, Save and Delete
// error with ErrTournamentNotFound for unknown ids.
type Store interface {
	Create(ctx context.Context, snapshot *core.Snapshot) (string, error)
	Load(ctx context.Context, id string) (*core.Snapshot, error)
	Save(ctx context.Context, id string, snapshot *core.Snapshot) error
	Delete(ctx context.Context, id string) error
	// Lists all tournaments, newest first
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

// The listing entry of a stored tournament
type Summary struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	CreatedAt     time.Time          `json:"created_date"`
	CurrentRound  int                `json:"current_round"`
	TotalRounds   int                `json:"num_rounds"`
	PairingMethod core.PairingMethod `json:"pairing_method"`
}

func (s Summary) Finished() bool {
	return s.CurrentRound > s.TotalRounds
}

func summarize(id string, snapshot *core.Snapshot) Summary {
	return Summary{
		ID:            id,
		Name:          snapshot.Name,
		CreatedAt:     snapshot.CreatedAt,
		CurrentRound:  snapshot.CurrentRound,
		TotalRounds:   snapshot.TotalRounds,
		PairingMethod: snapshot.PairingMethod,
	}
}

func newID() string {
	return uuid.NewString()
}

// Opens the store of the given driver. The dsn is ignored
// by the memory driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, DriverPostgres:
		return OpenSQLStore(ctx, driver, dsn)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
