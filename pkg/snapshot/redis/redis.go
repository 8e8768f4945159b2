// Package redis provides a Redis-based implementation of the snapshot
// store, for deployments that already run Redis and want snapshots
// shared across hosts.
package redis

import (
	"context"
	"fmt"

	"github.com/mindcore/mindcore/pkg/snapshot"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for RedisStore.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore implements snapshot.Store using Redis string values.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg *Config) (*RedisStore, error) {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "mindcore:snapshot:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &snapshot.UnavailableError{Cause: err}
	}

	return &RedisStore{client: client, keyPrefix: prefix}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used for testing.
func NewRedisStoreWithClient(client redis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "mindcore:snapshot:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (r *RedisStore) key(stateID string) string {
	return r.keyPrefix + stateID
}

// Put stores snapshot bytes under the given state ID.
func (r *RedisStore) Put(ctx context.Context, stateID string, data []byte) error {
	if err := r.client.Set(ctx, r.key(stateID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis: put snapshot %s: %w", stateID, err)
	}
	return nil
}

// Get returns the snapshot bytes for the given state ID.
func (r *RedisStore) Get(ctx context.Context, stateID string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(stateID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, &snapshot.NotFoundError{StateID: stateID}
		}
		return nil, fmt.Errorf("redis: get snapshot %s: %w", stateID, err)
	}
	return data, nil
}

// List returns the IDs of all stored snapshots.
func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.keyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis: list snapshots: %w", err)
		}
		for _, k := range keys {
			ids = append(ids, k[len(r.keyPrefix):])
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return ids, nil
}

// Delete removes the snapshot for the given state ID.
func (r *RedisStore) Delete(ctx context.Context, stateID string) error {
	if err := r.client.Del(ctx, r.key(stateID)).Err(); err != nil {
		return fmt.Errorf("redis: delete snapshot %s: %w", stateID, err)
	}
	return nil
}

// Close closes the Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
