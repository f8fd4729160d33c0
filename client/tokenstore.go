// Package client is the Go client for the Zero Un Production API: REST
// access, durable token storage, the push notification channel, realtime
// data bindings and the admin session.
// File: client/tokenstore.go
package client

import (
	"os"
	"strings"
	"sync"
)

// TokenStore persists exactly one bearer token. Expiry is the server's
// business; a stored token may well be stale.
type TokenStore interface {
	// Get returns the stored token, or "" when none is stored.
	Get() string
	// Set stores the token, replacing any previous one.
	Set(token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// ----------------- file-backed store -----------------

// FileTokenStore keeps the token in a single file so the session survives
// process restarts.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store writing to path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Get reads the stored token; any read failure counts as "no token".
func (f *FileTokenStore) Get() string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Set writes the token, readable by the owner only.
func (f *FileTokenStore) Set(token string) error {
	return os.WriteFile(f.path, []byte(token), 0600)
}

// Clear removes the token file.
func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ----------------- in-memory store -----------------

// MemoryTokenStore holds the token in memory. Handy for tests and for
// callers that do not want persistence.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// Get returns the stored token, or "".
func (m *MemoryTokenStore) Get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Set stores the token.
func (m *MemoryTokenStore) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear removes the token.
func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
