package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix  = "skillsage:session:"
	maxRedisRetries = 32
)

// ErrConflict is returned when an update kept losing optimistic-lock races.
var ErrConflict = errors.New("session update conflict")

// RedisStore keeps one JSON document per user. Updates run in WATCH/MULTI
// transactions and the TTL is refreshed on every write.
type RedisStore struct {
	rdb *goredis.Client
	ttl time.Duration
	now func() time.Time
}

// RedisOptions configures the connection used by NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreWithClient(rdb, opts.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(rdb *goredis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func redisKey(userID uuid.UUID) string {
	return redisKeyPrefix + userID.String()
}

// Get implements Store.
func (r *RedisStore) Get(ctx context.Context, userID uuid.UUID) (*Session, error) {
	data, err := r.rdb.Get(ctx, redisKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decode(data)
}

// Update implements Store.
func (r *RedisStore) Update(ctx context.Context, userID uuid.UUID, fn func(*Session) error) (*Session, error) {
	key := redisKey(userID)
	var result *Session

	txf := func(tx *goredis.Tx) error {
		s := New(userID)
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
		case err != nil:
			return fmt.Errorf("failed to load session: %w", err)
		default:
			if s, err = decode(data); err != nil {
				return err
			}
		}

		if err := fn(s); err != nil {
			return err
		}
		s.UpdatedAt = r.now().UTC()

		encoded, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		if err == nil {
			result = s
		}
		return err
	}

	for i := 0; i < maxRedisRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrConflict
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.rdb.Del(ctx, redisKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
