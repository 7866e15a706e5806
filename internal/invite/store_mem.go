package invite

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps invitations and game records in process memory. Used
// when no database is configured and in tests.
type MemoryStore struct {
	mu          sync.RWMutex
	invitations map[string]*Invitation // keyed by invitation id
	games       map[string]*GameRecord // keyed by game id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		invitations: make(map[string]*Invitation),
		games:       make(map[string]*GameRecord),
	}
}

func (m *MemoryStore) CreateInvitation(_ context.Context, inv *Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *inv
	m.invitations[inv.ID] = &cp
	return nil
}

func (m *MemoryStore) InvitationByID(_ context.Context, id string) (*Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invitations[id]
	if !ok {
		return nil, ErrInvitacionNoEncontrada
	}
	cp := *inv
	return &cp, nil
}

func (m *MemoryStore) InvitationByGameID(_ context.Context, gameID string) (*Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invitations {
		if inv.GameID == gameID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, ErrPartidaNoEncontrada
}

func (m *MemoryStore) SetInvitationStatus(_ context.Context, id string, status InviteStatus, acceptedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invitations[id]
	if !ok {
		return ErrInvitacionNoEncontrada
	}
	inv.Status = status
	if acceptedBy != "" {
		inv.AcceptedBy = acceptedBy
	}
	return nil
}

func (m *MemoryStore) InvitationsByOwner(_ context.Context, owner string) ([]Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Invitation
	for _, inv := range m.invitations {
		if inv.Owner == owner {
			out = append(out, *inv)
		}
	}
	sortInvitations(out)
	return out, nil
}

func (m *MemoryStore) PendingFor(_ context.Context, username, email string) ([]Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	var out []Invitation
	for _, inv := range m.invitations {
		if inv.Status != InvitePending || now.After(inv.ExpiresAt) {
			continue
		}
		directed := inv.InvitedEmail != "" && strings.EqualFold(inv.InvitedEmail, email)
		open := inv.InvitedEmail == "" && inv.Owner != username
		if directed || open {
			out = append(out, *inv)
		}
	}
	sortInvitations(out)
	return out, nil
}

func (m *MemoryStore) ExpireOverdue(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, inv := range m.invitations {
		if inv.Status == InvitePending && !inv.ExpiresAt.After(now) {
			inv.Status = InviteExpired
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CreateGame(_ context.Context, g *GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.games[g.GameID] = &cp
	return nil
}

func (m *MemoryStore) GameByID(_ context.Context, gameID string) (*GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[gameID]
	if !ok {
		return nil, ErrPartidaNoEncontrada
	}
	cp := *g
	return &cp, nil
}

func (m *MemoryStore) DeleteByGameID(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, inv := range m.invitations {
		if inv.GameID == gameID {
			delete(m.invitations, id)
		}
	}
	delete(m.games, gameID)
	return nil
}

func (m *MemoryStore) GamesByOwner(_ context.Context, owner string) ([]GameRecord, error) {
	return m.filterGames(func(g *GameRecord) bool { return g.Owner == owner })
}

func (m *MemoryStore) GamesForUser(_ context.Context, username string) ([]GameRecord, error) {
	return m.filterGames(func(g *GameRecord) bool {
		return g.Owner == username || g.Opponent == username
	})
}

func (m *MemoryStore) ActiveGamesFor(_ context.Context, username string) ([]GameRecord, error) {
	return m.filterGames(func(g *GameRecord) bool {
		return g.Status == GamePlaying && (g.Owner == username || g.Opponent == username)
	})
}

func (m *MemoryStore) filterGames(keep func(*GameRecord) bool) ([]GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []GameRecord
	for _, g := range m.games {
		if keep(g) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func sortInvitations(invs []Invitation) {
	sort.Slice(invs, func(i, j int) bool { return invs[i].CreatedAt.After(invs[j].CreatedAt) })
}
