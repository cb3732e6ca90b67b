// Package channels provides the Redis-backed implementation of the channel
// repository. Channels live under "channel:{id}" keys whose TTL is the
// channel lifetime; Redis expiry is the only cleanup mechanism.
package channels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/common"
	"github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository connects to Redis using a URL of the form
// redis://[user:pass@]host:port[/db].
func NewRedisRepository(redisURL string) (*RedisRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisRepository{client: redis.NewClient(opts)}, nil
}

func channelKey(id string) string {
	return fmt.Sprintf("channel:%s", id)
}

func (r *RedisRepository) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, channelKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisRepository) Load(ctx context.Context, id string) ([]byte, error) {
	data, err := r.client.Get(ctx, channelKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (r *RedisRepository) TTL(ctx context.Context, id string) (time.Duration, error) {
	d, err := r.client.TTL(ctx, channelKey(id)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis ttl: %w", err)
	}
	// -2 means the key is gone, -1 means no expiry is set.
	if d < 0 {
		return 0, common.ErrorNotFound
	}
	return d, nil
}

func (r *RedisRepository) Refresh(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := r.client.Expire(ctx, channelKey(id), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
