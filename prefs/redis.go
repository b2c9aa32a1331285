package prefs

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisKV adapts a redis client to the KV interface.
type redisKV struct {
	client *redis.Client
}

// NewRedisKV connects a KV backend to redis. Values persist without
// expiry; the lists are tiny and rewritten wholesale.
func NewRedisKV(addr, password string, db int) KV {
	return &redisKV{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}
