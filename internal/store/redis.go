package store

import (
    "context"
    "errors"

    "github.com/redis/go-redis/v9"
)

// Redis adapts a go-redis client to the KV contract.  Values are written
// without expiry; the registry and ledgers are durable state, not cache
// entries.
type Redis struct {
    client *redis.Client
}

// NewRedis wraps an already connected Redis client.
func NewRedis(client *redis.Client) *Redis { return &Redis{client: client} }

// Get returns the value under key, translating redis.Nil to ErrKeyNotFound.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
    raw, err := r.client.Get(ctx, key).Bytes()
    if err != nil {
        if errors.Is(err, redis.Nil) {
            return nil, ErrKeyNotFound
        }
        return nil, err
    }
    return raw, nil
}

// Set stores value under key with no expiry.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
    return r.client.Set(ctx, key, value, 0).Err()
}
