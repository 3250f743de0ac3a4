package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is the minimal cache contract consumed by services. Keeping it
// this small lets tests plug in a map-backed fake.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ErrMiss is returned when the key is not present.
var ErrMiss = redis.Nil

type redisClient struct {
	rdb *redis.Client
}

// NewRedis connects to Redis at addr and pings it once. A nil client and
// error are returned when the cache is unreachable; callers may treat the
// cache as optional.
func NewRedis(addr string) (Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &redisClient{rdb: rdb}, nil
}

func (c *redisClient) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *redisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *redisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
