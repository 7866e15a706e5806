package account

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// Sessions maps opaque tokens to logged-in usernames. Tokens expire on
// their own; Destroy only shortens that.
type Sessions interface {
	Create(ctx context.Context, username string) (string, error)
	Lookup(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
	Close() error
}

const sessionPrefix = "sesion:"

// RedisSessions keeps session tokens in redis with a TTL.
type RedisSessions struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessions(rdb *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{rdb: rdb, ttl: ttl}
}

func (s *RedisSessions) Create(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionPrefix+token, username, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessions) Lookup(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoAutorizado
	}
	username, err := s.rdb.Get(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoAutorizado
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

func (s *RedisSessions) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionPrefix+token).Err()
}

func (s *RedisSessions) Close() error { return nil }

// MemorySessions is the single-process fallback when redis is not
// configured.
type MemorySessions struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memorySession
}

type memorySession struct {
	username string
	expires  time.Time
}

func NewMemorySessions(ttl time.Duration) *MemorySessions {
	return &MemorySessions{ttl: ttl, data: make(map[string]memorySession)}
}

func (s *MemorySessions) Create(_ context.Context, username string) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.data[token] = memorySession{username: username, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemorySessions) Lookup(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[token]
	if !ok || time.Now().After(sess.expires) {
		delete(s.data, token)
		return "", ErrNoAutorizado
	}
	return sess.username, nil
}

func (s *MemorySessions) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
	return nil
}

func (s *MemorySessions) Close() error { return nil }
