package account

import (
	"context"
	"strings"
	"sync"
)

// MemoryUsers keeps accounts in process memory. Used when no database is
// configured and in tests.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by username
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*User)}
}

func (m *MemoryUsers) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return ErrUsuarioExiste
	}
	for _, other := range m.users {
		if strings.EqualFold(other.Email, u.Email) {
			return ErrUsuarioExiste
		}
	}
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *MemoryUsers) ByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return nil, ErrNoEncontrado
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryUsers) EmailTaken(_ context.Context, email, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username != username && strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryUsers) UpdateProfile(_ context.Context, username, email, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return ErrNoEncontrado
	}
	u.Email = email
	if hash != "" {
		u.Hash = hash
	}
	return nil
}
