package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each blob in the key "<prefix>:<name>". SET is atomic
// per key, so blobs never observe each other's partial writes.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore returns a store writing through client under prefix.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ledger"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string { return s.prefix + ":" + name }

// Save writes the snapshot blobs in order.
func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	return saveSnapshot(ctx, s, snap)
}

// Load reads the snapshot blobs; missing keys load as empty state.
func (s *RedisStore) Load(ctx context.Context) (Snapshot, error) {
	return loadSnapshot(ctx, s)
}

// PutBlob stores data with no expiry.
func (s *RedisStore) PutBlob(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.key(name), data, 0).Err()
}

// GetBlob fetches the blob; redis.Nil means it was never written.
func (s *RedisStore) GetBlob(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
