package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillsage/internal/types"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Store persists sessions. Implementations must be safe for concurrent use and
// must apply each Update atomically with respect to other updates of the same user.
type Store interface {
	// Get returns the user's session, or a new empty one if none exists.
	Get(ctx context.Context, userID uuid.UUID) (*Session, error)
	// Update loads (or creates) the session, applies fn and saves the result.
	// Nothing is saved when fn returns an error.
	Update(ctx context.Context, userID uuid.UUID, fn func(*Session) error) (*Session, error)
	// Delete removes the session.
	Delete(ctx context.Context, userID uuid.UUID) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are stored encoded so
// callers never share mutable state with the store.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]memoryEntry
}

// NewMemoryStore creates a MemoryStore that evicts sessions idle for longer than ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]memoryEntry),
	}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(userID)
}

// Update implements Store.
func (m *MemoryStore) Update(_ context.Context, userID uuid.UUID, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.load(userID)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = m.now().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	m.entries[userID] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return s, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

// Len returns the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	return len(m.entries)
}

// load must be called with mu held.
func (m *MemoryStore) load(userID uuid.UUID) (*Session, error) {
	m.sweep()
	entry, ok := m.entries[userID]
	if !ok {
		return New(userID), nil
	}
	return decode(entry.data)
}

func (m *MemoryStore) sweep() {
	now := m.now()
	for id, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if s.Profile.PsychometricAnswers == nil {
		s.Profile.PsychometricAnswers = map[int]string{}
	}
	if s.Questions == nil {
		s.Questions = []types.Question{}
	}
	return &s, nil
}
