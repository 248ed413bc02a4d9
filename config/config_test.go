package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "MAX_BODY_BYTES", "SHUTDOWN_TIMEOUT", "CORS_ALLOW_ORIGIN",
	"LOG_LEVEL", "LOG_PRODUCTION",
	"MONGO_URI", "MONGO_DB", "MONGO_NOTES_COLLECTION", "MONGO_MAX_POOL_SIZE",
	"MONGO_MIN_POOL_SIZE", "MONGO_MAX_CONN_IDLE_TIME", "MONGO_RETRY_WRITES",
	"REDIS_URL", "JWT_SECRET_KEY", "JWT_ISSUER", "JWT_EXPIRATION_TIME",
}

// isolateEnv runs the test from an empty directory (no .env) with every
// config key unset. Both are restored afterwards.
func isolateEnv(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("JWT_SECRET_KEY", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "inotebook", cfg.Database.DatabaseName)
	assert.Equal(t, "notes", cfg.Database.NotesCollection)
	assert.Equal(t, 60*time.Second, cfg.Database.MaxConnIdleTime)
	assert.Equal(t, "inotebook", cfg.JWT.Issuer)
	assert.Equal(t, int64(3600), cfg.JWT.ExpirationTime)
	assert.Empty(t, cfg.Redis.URL)
}

func TestLoadFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "notes_prod")
	t.Setenv("MONGO_MAX_CONN_IDLE_TIME", "30")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.Equal(t, "notes_prod", cfg.Database.DatabaseName)
	assert.Equal(t, 30*time.Second, cfg.Database.MaxConnIdleTime)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)

	opts := cfg.Database.ClientOptions()
	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(100), *opts.MaxPoolSize)
}

func TestLoadRequiresSecret(t *testing.T) {
	isolateEnv(t)

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}
