package store

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/ezBadminton/goswiss/core"
)

// MemoryStore keeps the snapshots in memory. The snapshots
// are stored encoded so that callers never share state
// with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	tournaments map[string]memoryEntry
}

type memoryEntry struct {
	summary Summary
	data    []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tournaments: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(ctx context.Context, snapshot *core.Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	id := newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[id] = memoryEntry{summary: summarize(id, snapshot), data: data}
	return id, nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*core.Snapshot, error) {
	s.mu.RLock()
	entry, ok := s.tournaments[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrTournamentNotFound
	}

	snapshot := &core.Snapshot{}
	if err := json.Unmarshal(entry.data, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, snapshot *core.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	s.tournaments[id] = memoryEntry{summary: summarize(id, snapshot), data: data}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(s.tournaments, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	summaries := make([]Summary, 0, len(s.tournaments))
	for _, entry := range s.tournaments {
		summaries = append(summaries, entry.summary)
	}
	s.mu.RUnlock()

	slices.SortFunc(summaries, func(a, b Summary) int {
		return cmp.Or(
			b.CreatedAt.Compare(a.CreatedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return summaries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
