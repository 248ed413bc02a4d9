package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenBlacklist looks up revoked tokens. Revocations are written by the
// account service under blacklist:<type>:<token> with a TTL matching the
// token expiry.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(ctx context.Context, redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

func blacklistKey(tokenType, tokenString string) string {
	return fmt.Sprintf("blacklist:%s:%s", tokenType, tokenString)
}

// IsBlacklisted checks both the access and refresh blacklists in one round
// trip.
func (tb *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	pipe := tb.Client.Pipeline()
	accessCmd := pipe.Exists(ctx, blacklistKey("access", tokenString))
	refreshCmd := pipe.Exists(ctx, blacklistKey("refresh", tokenString))

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}

	return accessCmd.Val() > 0 || refreshCmd.Val() > 0, nil
}

// Ping checks if the Redis connection is alive
func (tb *RedisTokenBlacklist) Ping(ctx context.Context) error {
	if tb == nil || tb.Client == nil {
		return errors.New("redis client not initialized")
	}
	return tb.Client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
