// Package session replaces ambient browser-style auth state with an
// explicit object that is constructed once, injected into anything that
// needs the signed-in user, and torn down when the owner is done with it.
package session

import (
	"sync"

	"github.com/invogen/invogen-client/internal/apierrors"
)

// User is the signed-in account's profile as the backend reports it.
// Business fields are optional on the account and default to empty.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName,omitempty"`
	Address      string `json:"address,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
}

// Session carries the authenticated user and API token for one sign-in.
type Session struct {
	mu     sync.RWMutex
	user   User
	token  string
	closed bool
}

// New creates an active session for the given user and bearer token.
func New(user User, token string) *Session {
	return &Session{user: user, token: token}
}

// User returns the current profile snapshot.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the bearer token for API calls, or an error once the
// session has been closed.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", apierrors.Validation("session is closed")
	}
	return s.token, nil
}

// UpdateUser replaces the profile snapshot, e.g. after a profile edit.
func (s *Session) UpdateUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Active reports whether the session is still usable.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

// Close tears the session down. Further Token calls fail; the profile
// snapshot stays readable so in-flight draft builds can complete.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.token = ""
}
