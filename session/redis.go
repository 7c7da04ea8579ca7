package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rpupo63/signature-homes-backend/gallery"
)

const redisKeyPrefix = "gallery:session:"

// RedisStore shares sessions between instances. State is stored as JSON with
// a TTL that is refreshed on every save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Create(ctx context.Context, state gallery.State) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode session state: %w", err)
	}

	id := newID()
	ok, err := s.rdb.SetNX(ctx, redisKey(id), payload, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("session id collision: %s", id)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (gallery.State, error) {
	payload, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gallery.State{}, ErrSessionNotFound
	}
	if err != nil {
		return gallery.State{}, fmt.Errorf("failed to load session: %w", err)
	}

	var state gallery.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return gallery.State{}, fmt.Errorf("failed to decode session state: %w", err)
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, state gallery.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	// XX: only overwrite sessions that still exist
	ok, err := s.rdb.SetXX(ctx, redisKey(id), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Ping checks the connection at startup
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
