package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPreferences stores preferences as plain Redis strings without expiry.
type RedisPreferences struct {
	client *redis.Client
	prefix string
}

// NewRedisPreferences connects to redisURL and verifies the connection.
func NewRedisPreferences(redisURL string) (*RedisPreferences, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPreferences{client: client, prefix: "pref:"}, nil
}

func (p *RedisPreferences) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := p.client.Get(ctx, p.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, true, nil
}

func (p *RedisPreferences) Set(ctx context.Context, key, value string) error {
	if err := p.client.Set(ctx, p.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

func (p *RedisPreferences) Close() error {
	return p.client.Close()
}
