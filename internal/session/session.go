// Package session holds the client's (user, token) pair and persists it to
// browser local storage so a page reload keeps the user signed in. The
// in-memory copy is the source of truth; storage is only a bootstrap cache
// read once on startup.
package session

import (
	"sync"

	"github.com/deciflow/deciflow/internal/model"
)

const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// Storage is the slice of browser local storage the store needs. go-app's
// BrowserStorage satisfies it; tests use an in-memory implementation.
type Storage interface {
	Set(k string, v any) error
	Get(k string, v any) error
	Del(k string)
}

// Store is the only shared mutable state in the client.
type Store struct {
	mu      sync.RWMutex
	user    *model.User
	token   string
	storage Storage
}

// NewStore returns a store backed by the given storage. A nil storage is
// valid: the store then lives purely in memory (no browser environment).
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Bind attaches browser storage after construction. The wasm entrypoint uses
// it because local storage is only reachable once a UI context exists.
func (s *Store) Bind(storage Storage) {
	s.mu.Lock()
	s.storage = storage
	s.mu.Unlock()
}

// SetAuth replaces the current user and token and persists both.
func (s *Store) SetAuth(user model.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	if s.storage != nil {
		s.storage.Set(tokenKey, token)
		s.storage.Set(userKey, user)
	}
}

// SetUser replaces the user only, e.g. after a profile refresh.
func (s *Store) SetUser(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	if s.storage != nil {
		s.storage.Set(userKey, user)
	}
}

// Logout clears the session in memory and in storage. It performs no network
// call; revoking the token server-side is the caller's job.
func (s *Store) Logout() {
	s.Clear()
}

// Clear is Logout reporting whether a token was actually present. The API
// gateway uses it so that any number of 401 responses landing together
// produce exactly one logout and one redirect.
func (s *Store) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.token != ""
	s.user = nil
	s.token = ""
	if s.storage != nil {
		s.storage.Del(tokenKey)
		s.storage.Del(userKey)
	}
	return had
}

// Hydrate restores the session from storage. It populates memory only when
// both keys are present and the stored user decodes; a corrupt user record
// degrades to a clean logged-out state. Hydrate never panics and is a no-op
// without storage.
func (s *Store) Hydrate() {
	s.mu.Lock()
	storage := s.storage
	s.mu.Unlock()
	if storage == nil {
		return
	}

	var token string
	if err := storage.Get(tokenKey, &token); err != nil || token == "" {
		return
	}

	var user model.User
	if err := storage.Get(userKey, &user); err != nil {
		s.Clear()
		return
	}
	if user.ID == 0 {
		// Token without a stored user: treat as absent, keep logged out.
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, nil when none is set.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
