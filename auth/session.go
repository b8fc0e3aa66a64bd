package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the process-wide authenticated context: the backend token plus
// the last-registered-identifier hint used to prefill the login form. Only
// the Manager writes it; everyone else reads.
type Session struct {
	mu             sync.RWMutex
	token          string
	lastRegistered string
}

func NewSession() *Session {
	return &Session{}
}

// Token returns the current session token, or "" when logged out.
// Satisfies gateway.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Active() bool {
	return s.Token() != ""
}

// ExpiresAt reads the exp claim out of the token without verifying the
// signature; verification is the backend's job. The second return is false
// when there is no token or no expiry claim.
func (s *Session) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token carries an expiry claim that has
// passed. A token without an expiry never expires locally.
func (s *Session) Expired() bool {
	expiry, ok := s.ExpiresAt()
	return ok && time.Now().After(expiry)
}

func (s *Session) LastRegistered() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRegistered
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) clearToken() {
	s.setToken("")
}

func (s *Session) setLastRegistered(identifier string) {
	s.mu.Lock()
	s.lastRegistered = identifier
	s.mu.Unlock()
}
