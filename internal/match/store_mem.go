package match

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is the development fallback used when no REDIS_URL is
// configured. Each match key gets its own mutex so updates of one match
// serialize without blocking the rest.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]*State
	locks  map[string]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]*State),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *MemoryStore) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*State, error) {
	id = strings.TrimSpace(id)
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	st := s.states[id]
	s.mu.Unlock()
	if st == nil {
		return NewState(), nil
	}
	return st.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, fn UpdateFunc) (*State, error) {
	id = strings.TrimSpace(id)
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	st := s.states[id].Clone()
	s.mu.Unlock()
	if st == nil {
		st = NewState()
	}

	save, err := fn(st)
	if err != nil {
		return nil, err
	}
	if save {
		s.mu.Lock()
		s.states[id] = st.Clone()
		s.mu.Unlock()
	}
	return st, nil
}

func (s *MemoryStore) Close() error { return nil }
