package state

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrStateNotFound   = errors.New("session state not found")
	ErrNilSessionState = errors.New("session state is nil")
)

// Store is the session-registry contract used by hosting layers that
// serve more than one session. Each session's state is fully isolated;
// that isolation is the only concurrency discipline this system needs.
type Store interface {
	Load(ctx context.Context, sessionID string) (*SessionState, error)
	LoadOrCreate(ctx context.Context, sessionID string) (*SessionState, error)
	Save(ctx context.Context, st *SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// StoreOption customizes MemoryStore.
type StoreOption func(*MemoryStore)

// WithClock overrides the store's clock, mainly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// MemoryStore keeps every session in memory for its lifetime. State is
// never persisted: sessions die with the process, and no cross-session
// sharing can occur because each ID maps to its own SessionState.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*SessionState
	now      func() time.Time
}

func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*SessionState),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	id, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return nil, ErrStateNotFound
	}
	return st, nil
}

// LoadOrCreate returns the existing session or seeds a fresh one with
// default role states.
func (s *MemoryStore) LoadOrCreate(ctx context.Context, sessionID string) (*SessionState, error) {
	id, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[id]; ok {
		return st, nil
	}
	st := NewSessionState(id, s.now())
	s.sessions[id] = st
	return st, nil
}

func (s *MemoryStore) Save(ctx context.Context, st *SessionState) error {
	if st == nil {
		return ErrNilSessionState
	}
	id, err := normalizeSessionID(st.SessionID)
	if err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st.Touch(s.now())
	s.sessions[id] = st
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	id, err := normalizeSessionID(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func normalizeSessionID(sessionID string) (string, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return "", ErrInvalidSession
	}
	return id, nil
}
