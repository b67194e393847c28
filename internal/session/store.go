package session

import (
	"errors"
	"fmt"
	"sale-route-service/internal/domain"
	"sale-route-service/internal/platform/obs"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	selection *domain.Selection
	lastSeen  time.Time
}

// Store owns the selection of every live client session.
//
// Each session has its own Selection; nothing is shared between sessions.
// Reads hand out snapshots, so a route can be planned from a selection while
// the session keeps toggling. Sessions idle for longer than the TTL are
// treated as gone and removed by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session with an empty selection and returns its id.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &entry{selection: domain.NewSelection(), lastSeen: s.now()}
	obs.ActiveSessions.Set(float64(len(s.sessions)))
	return id
}

// lookup returns a live session and refreshes its idle timer. Callers hold mu.
func (s *Store) lookup(id string) (*entry, error) {
	e, ok := s.sessions[id]
	if !ok || s.expired(e, s.now()) {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	e.lastSeen = s.now()
	return e, nil
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

// Toggle flips saleID in the session's selection. It returns whether the sale
// is selected afterwards and the new selection size.
func (s *Store) Toggle(id, saleID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return false, 0, err
	}
	selected := e.selection.Toggle(saleID)
	return selected, e.selection.Len(), nil
}

// Selected returns a snapshot of the selected ids in insertion order.
func (s *Store) Selected(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.selection.IDs(), nil
}

func (s *Store) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.selection.Clear()
	return nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	delete(s.sessions, id)
	obs.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// Sweep drops every session idle past the TTL and returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	obs.ActiveSessions.Set(float64(len(s.sessions)))
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
