// internal/store/memory.go
//
// In-memory stores.
//
// Characteristics:
//   - Runs and sessions kept in maps keyed by ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/player"
)

// memoryRuns is a map-based Runs implementation.
type memoryRuns struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewMemoryRuns constructs an in-memory Runs store.
func NewMemoryRuns() Runs {
	return &memoryRuns{runs: make(map[string]Run)}
}

func (m *memoryRuns) SaveRun(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID] = *r
	return nil
}

func (m *memoryRuns) GetRun(ctx context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	return &r, nil
}

func (m *memoryRuns) ListRuns(ctx context.Context, userID string, limit int) ([]Run, error) {
	m.mu.RLock()
	out := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		if userID != "" && r.UserID != userID {
			continue
		}
		r.Report.Results = nil
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Round is one guess of an assist session and the marks entered for it.
type Round struct {
	Guess game.Guess  `json:"guess"`
	Marks []game.Mark `json:"marks,omitempty"`
}

// Session is a live assist session: the solver suggests, a human reports marks.
type Session struct {
	ID        string
	Player    *player.Strategy
	Rounds    []Round
	Solved    bool
	UpdatedAt time.Time
}

// Sessions holds live sessions in memory.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions constructs an empty session store.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Create stores s under a new ID.
func (m *Sessions) Create(s *Session) string {
	s.ID = NewID()
	s.UpdatedAt = time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s.ID
}

// Update runs fn on session id while holding the write lock.
func (m *Sessions) Update(id string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	if err := fn(s); err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// View runs fn on session id under the read lock.
func (m *Sessions) View(id string, fn func(*Session) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return fn(s)
}

// Prune drops sessions idle for longer than maxIdle and returns how many went.
func (m *Sessions) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
