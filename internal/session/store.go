// Package session holds the authentication artifact for the current run of
// the client. The store is the single source of truth for "is the caller
// authenticated": the navigation guard and every API call read it, only
// login and logout write it.
package session

import (
	"sync"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

// Profile is the secondary cache written opportunistically after login so
// views can greet the user without refetching.
type Profile struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// Store is the session capability handed to the guard and the API client.
//
// Set replaces the stored session wholesale — token, user id and email are
// written together, never partially, so a reader can never observe a torn
// state. Get reports absent for any session that is not fully populated,
// which also covers corrupt persisted data.
type Store interface {
	Get() (domain.Session, bool)
	Set(domain.Session) error
	Clear() error
	Profile() (Profile, bool)
	SetProfile(Profile) error
}

// MemoryStore is an in-process Store. It is what tests inject and what the
// file-backed store embeds for its hot copy.
type MemoryStore struct {
	mu      sync.RWMutex
	session domain.Session
	profile Profile
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current session, or absent when logged out or when the
// stored session is partial.
func (m *MemoryStore) Get() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.session.IsValid() {
		return domain.Session{}, false
	}
	return m.session, true
}

// Set replaces the session wholesale.
func (m *MemoryStore) Set(s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

// Clear removes the session and the profile cache.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = domain.Session{}
	m.profile = Profile{}
	return nil
}

// Profile returns the cached name/surname pair, if one was written.
func (m *MemoryStore) Profile() (Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile.Name == "" && m.profile.Surname == "" {
		return Profile{}, false
	}
	return m.profile, true
}

// SetProfile replaces the cached profile.
func (m *MemoryStore) SetProfile(p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
	return nil
}

// Token implements client.TokenSource: the bearer credential for the current
// session, or empty when logged out.
func (m *MemoryStore) Token() string {
	s, ok := m.Get()
	if !ok {
		return ""
	}
	return s.Token
}
