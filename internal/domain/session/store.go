package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Store errors.
var (
	ErrNotFound        = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// Factory builds a new session with the given id.
type Factory func(id string) *Session

// StoreConfig bounds the set of live sessions.
type StoreConfig struct {
	// MaxSessions caps concurrently open sessions. Zero means unbounded.
	MaxSessions int
	// TTL closes sessions idle for longer than this. Zero disables expiry.
	TTL time.Duration
}

// Store keeps the open sessions of the kiosk, keyed by id.
type Store struct {
	cfg     StoreConfig
	factory Factory

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty Store.
func NewStore(cfg StoreConfig, factory Factory) *Store {
	return &Store{
		cfg:      cfg,
		factory:  factory,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session with a random id. The caller starts its menu
// load.
func (st *Store) Create() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.cfg.MaxSessions > 0 && len(st.sessions) >= st.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	id := uuid.New().String()
	s := st.factory(id)
	st.sessions[id] = s
	return s, nil
}

// Get returns the open session with the given id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()

	if !ok || s.Closed() {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete closes and forgets the session with the given id.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.Close()
	return nil
}

// Len returns the number of open sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep closes sessions idle since before now-TTL and returns how many were
// removed.
func (st *Store) Sweep(now time.Time) int {
	if st.cfg.TTL <= 0 {
		return 0
	}

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if now.Sub(s.LastSeen()) > st.cfg.TTL {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (st *Store) StartSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if st.cfg.TTL <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := st.Sweep(now); n > 0 && onSweep != nil {
					onSweep(n)
				}
			}
		}
	}()
}

// CloseAll closes and forgets every session.
func (st *Store) CloseAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
