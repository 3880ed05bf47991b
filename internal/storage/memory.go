// Package storage provides session persistence implementations.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionStore = (*MemoryStore)(nil)

// MemoryStore is the in-memory session store. The outer lock guards only
// the id→entry map; every entry carries its own mutex, so operations
// against different sessions never contend while operations against the
// same session are fully serialized.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	log     *logger.Logger
}

type entry struct {
	mu      sync.Mutex
	session *domain.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		log:     log,
	}
}

// Create registers a new session under its id.
func (s *MemoryStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[session.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.entries[session.ID] = &entry{session: session}
	s.log.Debug("created session %s (recipe=%q, steps=%d)", session.ID, session.RecipeName, session.Steps.Len())
	return nil
}

// Update runs fn against the session under its lock. Any error from fn is
// returned as-is and the session keeps whatever state fn left it in;
// callers validate before mutating.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*domain.Session) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// View runs fn against the session under its lock. The closure gets the
// same exclusion guarantee as Update; timer expiry flips happen on reads,
// so a shared lock would not be enough.
func (s *MemoryStore) View(ctx context.Context, id string, fn func(*domain.Session)) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
	return nil
}

// Delete removes a session by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.entries, id)
	s.log.Debug("deleted session %s", id)
	return nil
}

// IDs returns the ids of all stored sessions.
func (s *MemoryStore) IDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	return out, nil
}

func (s *MemoryStore) lookup(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		s.log.Debug("session not found: %s", id)
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}
