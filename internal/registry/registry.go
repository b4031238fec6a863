package registry

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stephentim/Reversi/internal/session"
)

// DefaultTTL is how long an untouched session survives between sweeps.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned when a session id is unknown or already evicted.
var ErrNotFound = errors.New("registry: session not found")

// entry pairs a session with its last activity timestamp.
type entry struct {
	session    *session.Session
	lastActive time.Time
}

// Registry holds the live sessions by id. Every lookup refreshes the
// session's activity timestamp; Sweep evicts sessions idle longer than the
// TTL so abandoned games do not pile up.
type Registry struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]*entry
}

// NewRegistry creates an empty registry. A non-positive ttl falls back to
// DefaultTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Registry{
		ttl:  ttl,
		data: make(map[string]*entry),
	}
}

// Create registers a session and returns its new id.
func (r *Registry) Create(s *session.Session) string {
	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[id] = &entry{session: s, lastActive: time.Now()}
	slog.Info("session created", "session_id", id, "sessions", len(r.data))

	return id
}

// Get returns the session with the given id and refreshes its activity.
func (r *Registry) Get(id string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.data[id]
	if !ok {
		return nil, ErrNotFound
	}

	e.lastActive = time.Now()
	return e.session, nil
}

// Delete closes a session and removes it.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}

	delete(r.data, id)
	e.session.Close()

	slog.Info("session deleted", "session_id", id, "sessions", len(r.data))
	return nil
}

// IDs returns all session ids, most recently active first.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	type activeID struct {
		id         string
		lastActive time.Time
	}

	ids := make([]activeID, 0, len(r.data))
	for id, e := range r.data {
		ids = append(ids, activeID{id: id, lastActive: e.lastActive})
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].lastActive.After(ids[j].lastActive)
	})

	result := make([]string, len(ids))
	for i, e := range ids {
		result[i] = e.id
	}
	return result
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// Sweep evicts sessions idle longer than the TTL and returns how many were
// removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deadline := time.Now().Add(-r.ttl)
	evicted := 0

	for id, e := range r.data {
		if e.lastActive.Before(deadline) {
			delete(r.data, id)
			e.session.Close()
			evicted++
		}
	}

	if evicted > 0 {
		slog.Info("evicted idle sessions", "count", evicted, "sessions", len(r.data))
	}
	return evicted
}

// StartSweeper sweeps on the given interval until the context is cancelled.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}
