package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis uses TEST_REDIS_URL (default DB 1 on localhost) and skips
// when redis is not reachable.
func setupTestRedis(t *testing.T) *RedisTokenBlacklist {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/1"
	}

	blacklist, err := NewTokenBlacklist(context.Background(), url)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = blacklist.Close() })
	return blacklist
}

func TestRedisTokenBlacklist(t *testing.T) {
	blacklist := setupTestRedis(t)
	ctx := context.Background()

	token := "token-" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() {
		blacklist.Client.Del(context.Background(), blacklistKey("access", token), blacklistKey("refresh", token))
	})

	revoked, err := blacklist.IsBlacklisted(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Client.Set(ctx, blacklistKey("refresh", token), "true", time.Minute).Err())

	revoked, err = blacklist.IsBlacklisted(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, blacklist.Ping(ctx))
}

func TestNewTokenBlacklistBadURL(t *testing.T) {
	_, err := NewTokenBlacklist(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestBlacklistKey(t *testing.T) {
	assert.Equal(t, "blacklist:access:abc", blacklistKey("access", "abc"))
	assert.Equal(t, "blacklist:refresh:abc", blacklistKey("refresh", "abc"))
}
