// internal/store/memory.go
//
// In-memory implementation of the pool session Store interface.
// An opened pool is the parsed form of one pasted text blob (one or
// more boards) kept around so callers can re-check scores against it
// without re-submitting the text.
//
// Characteristics:
//   - Stores *Pool objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for missing pool IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nicolekc/super-bowl-squares/internal/squares"
)

// Pool is one opened pool session: the parsed boards plus the source
// text they came from, echoed back on fetch so clients can re-edit the
// original blob.
type Pool struct {
	ID     string          `json:"id"`
	Boards []squares.Board `json:"boards"`
	Source string          `json:"text"`
	Opened time.Time       `json:"opened"`
}

// NewPool wraps parsed boards in a session with a fresh ID.
func NewPool(boards []squares.Board, source string) *Pool {
	return &Pool{
		ID:     uuid.NewString(),
		Boards: boards,
		Source: source,
		Opened: time.Now().UTC(),
	}
}

// Store defines the session persistence interface.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a pool session.
	Save(ctx context.Context, p *Pool) error

	// Get retrieves a pool by ID.
	// Returns an error if the pool is not found.
	Get(ctx context.Context, id string) (*Pool, error)
}

// ErrNotFound is returned by Get for unknown pool IDs.
var ErrNotFound = errors.New("pool not found")

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards pools map
	pools map[string]*Pool // keyed by Pool.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{pools: make(map[string]*Pool)}
}

// Save adds or updates the pool in the map.
func (m *memory) Save(ctx context.Context, p *Pool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pools[p.ID] = p
	return nil
}

// Get looks up a pool by ID.
func (m *memory) Get(ctx context.Context, id string) (*Pool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.pools[id]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}
