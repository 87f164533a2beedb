package store

import (
	"context"
	"delivery-fee-service/internal/platform/obs"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the blob under a single Redis string key without expiry.
// Entry expiry is handled by the cache itself.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.redis.Load")(&err)

	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", r.key, err)
	}
	return b, nil
}

func (r *RedisStore) Save(ctx context.Context, blob []byte) (err error) {
	defer obs.Time(ctx, "kv.redis.Save")(&err)

	if err := r.client.Set(ctx, r.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", r.key, err)
	}
	return nil
}
