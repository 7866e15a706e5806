package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	stateTTL      = 24 * time.Hour
	updateRetries = 5
)

// RedisStore keeps match states as JSON values under partida:<id>.
// Mutations go through WATCH transactions, so concurrent moves on the same
// match serialize via optimistic retry instead of a process-local lock.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects and pings the redis instance behind redisURL.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for redis match store")
	}
	opts, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// NewRedisStoreFromClient wraps an existing client (shared with sessions).
func NewRedisStoreFromClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Client exposes the underlying connection so other redis-backed pieces
// can share it.
func (s *RedisStore) Client() *redis.Client { return s.rdb }

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func stateKey(id string) string { return "partida:" + strings.TrimSpace(id) }

func (s *RedisStore) Load(ctx context.Context, id string) (*State, error) {
	raw, err := s.rdb.Get(ctx, stateKey(id)).Bytes()
	if err == redis.Nil {
		return NewState(), nil
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("unmarshal state %s: %w", id, err)
	}
	return &st, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*State, error) {
	key := stateKey(id)
	var result *State

	for attempt := 0; attempt < updateRetries; attempt++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			st := NewState()
			raw, err := tx.Get(ctx, key).Bytes()
			if err != nil && err != redis.Nil {
				return err
			}
			if err == nil {
				st = &State{}
				if jerr := json.Unmarshal(raw, st); jerr != nil {
					return fmt.Errorf("unmarshal state %s: %w", id, jerr)
				}
			}

			save, ferr := fn(st)
			if ferr != nil {
				return ferr
			}
			result = st
			if !save {
				return nil
			}

			newRaw, jerr := json.Marshal(st)
			if jerr != nil {
				return jerr
			}
			pipe := tx.TxPipeline()
			pipe.Set(ctx, key, newRaw, stateTTL)
			_, err = pipe.Exec(ctx)
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue // lost the race, re-read and retry
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, ErrConflicto
}

// ParseRedisURL accepts redis://[:pass@]host:port[/db] and rediss:// URLs.
func ParseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
