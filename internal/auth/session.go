package auth

import (
	"context"
	"sync"
	"time"
)

// SessionStore remembers sessions ended by logout until their tokens expire.
type SessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *SessionStore) Revoke(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	s.revoked[session.ID] = session.ExpiresAt
}

func (s *SessionStore) IsRevoked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.revoked[id]
	return ok
}

// prune drops entries whose token has expired anyway. Callers hold mu.
func (s *SessionStore) prune() {
	now := s.now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}

type sessionKey struct{}

func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*Session)
	return session, ok && session != nil
}
