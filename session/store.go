// Package session keeps the per-visitor gallery selection (project filter and
// open lightbox image) between requests.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/signature-homes-backend/gallery"
)

var ErrSessionNotFound = errors.New("gallery session not found")

const DefaultTTL = 30 * time.Minute

// Store persists gallery viewing state keyed by session id
type Store interface {
	Create(ctx context.Context, state gallery.State) (string, error)
	Get(ctx context.Context, id string) (gallery.State, error)
	Save(ctx context.Context, id string, state gallery.State) error
	Delete(ctx context.Context, id string) error
}

func newID() string {
	return uuid.NewString()
}

type memoryEntry struct {
	state     gallery.State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Expired entries are dropped lazily on
// access and by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, state gallery.State) (string, error) {
	id := newID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{state: state, expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (gallery.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return gallery.State{}, ErrSessionNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return gallery.State{}, ErrSessionNotFound
	}
	return entry.state, nil
}

// Save replaces the state and extends the session's lifetime
func (s *MemoryStore) Save(_ context.Context, id string, state gallery.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return ErrSessionNotFound
	}
	s.entries[id] = memoryEntry{state: state, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.entries, id)
	return nil
}

// Sweep removes expired sessions and returns how many are left
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is done. report receives the
// number of live sessions after each sweep and may be nil.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration, report func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			live := s.Sweep()
			if report != nil {
				report(live)
			}
		}
	}
}
