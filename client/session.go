// Package client - client/session.go
package client

import (
	"sync"

	"zeroun-site/logger"
)

// SessionState is the admin session's authentication state.
type SessionState int

// session states; a session starts Unknown until Init resolves it
const (
	SessionUnknown SessionState = iota
	SessionAuthenticated
	SessionUnauthenticated
)

// Identity is who the session is authenticated as.
type Identity struct {
	Username string
	Email    string
}

// Session is the process-wide authentication state. It is constructed
// explicitly and handed to whatever needs it — there is no package-level
// singleton. Transitions are user- or startup-triggered, never concurrent.
type Session struct {
	api *Client

	mu       sync.Mutex
	state    SessionState
	identity Identity
}

// NewSession creates a session in the Unknown state. Call Init to resolve it.
func NewSession(api *Client) *Session {
	return &Session{api: api, state: SessionUnknown}
}

// Init resolves the initial state from the stored token: no token means
// Unauthenticated; a token is only trusted after a successful verify call,
// and purged when that call fails.
func (s *Session) Init() error {
	if s.api.Tokens().Get() == "" {
		s.set(SessionUnauthenticated, Identity{})
		return nil
	}

	identity, err := s.api.Verify()
	if err != nil {
		logger.Warn.Printf("[Session] stored token rejected, purging: %v", err)
		if clearErr := s.api.Tokens().Clear(); clearErr != nil {
			logger.Error.Printf("[Session] could not clear token: %v", clearErr)
		}
		s.set(SessionUnauthenticated, Identity{})
		return nil
	}
	s.set(SessionAuthenticated, Identity{Username: identity.Username, Email: identity.Email})
	return nil
}

// Login exchanges credentials for a token, stores it and resolves the
// identity. On failure the session becomes Unauthenticated and the server's
// error is returned.
func (s *Session) Login(username, password string) error {
	token, err := s.api.Login(username, password)
	if err != nil {
		s.set(SessionUnauthenticated, Identity{})
		return err
	}
	if err := s.api.Tokens().Set(token.AccessToken); err != nil {
		return err
	}

	identity, err := s.api.Verify()
	if err != nil {
		// token was accepted a moment ago; fall back to the login name
		logger.Warn.Printf("[Session] verify after login failed: %v", err)
		s.set(SessionAuthenticated, Identity{Username: username})
		return nil
	}
	s.set(SessionAuthenticated, Identity{Username: identity.Username, Email: identity.Email})
	return nil
}

// Logout purges the token and drops to Unauthenticated.
func (s *Session) Logout() error {
	err := s.api.Tokens().Clear()
	s.set(SessionUnauthenticated, Identity{})
	return err
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns who the session is authenticated as; meaningful only in
// the Authenticated state.
func (s *Session) Identity() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// IsAuthenticated reports whether the session holds a verified identity.
func (s *Session) IsAuthenticated() bool {
	return s.State() == SessionAuthenticated
}

func (s *Session) set(state SessionState, identity Identity) {
	s.mu.Lock()
	s.state = state
	s.identity = identity
	s.mu.Unlock()
}
