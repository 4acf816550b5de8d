package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/poiesic/finanswer/core"
)

// Store keeps per-session conversation history in memory. Sessions are
// independent: operations on one never contend with another beyond the map
// lookup itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	logger   *slog.Logger
}

type session struct {
	mu    sync.Mutex
	turns []core.Turn
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates an empty session store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*session),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure returns the given session ID, or mints a fresh one when the ID is
// empty, registering an empty history for it.
func (s *Store) Ensure(id string) string {
	if id != "" {
		return id
	}

	id = uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{}
	s.mu.Unlock()
	s.logger.Debug("created session", "sessionID", id)
	return id
}

// History returns a copy of the session's turns in order. Unknown sessions
// have empty history.
func (s *Store) History(id string) []core.Turn {
	s.mu.RLock()
	sess := s.sessions[id]
	s.mu.RUnlock()
	if sess == nil {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	turns := make([]core.Turn, len(sess.turns))
	copy(turns, sess.turns)
	return turns
}

// Append records a completed exchange on the session, creating it if needed.
func (s *Store) Append(id string, turn core.Turn) {
	s.mu.Lock()
	sess := s.sessions[id]
	if sess == nil {
		sess = &session{}
		s.sessions[id] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	sess.turns = append(sess.turns, turn)
	sess.mu.Unlock()
}

// Len reports the number of known sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
