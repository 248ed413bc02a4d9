package config

import (
	"os"
	"time"

	"inotebook/utils"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port            string        `default:"5000"`
	GinMode         string        `default:"release"`
	MaxBodyBytes    int64         `default:"1048576"`
	ShutdownTimeout time.Duration `default:"10s"`
	CORSAllowOrigin string        `default:"*"`
}

type LogConfig struct {
	Level      string `default:"info"`
	Production bool   `default:"true"`
}

// RedisConfig points at the token revocation store. An empty URL disables
// the revocation check.
type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	SecretKey string
	Issuer    string `default:"inotebook"`
	// ExpirationTime is in seconds.
	ExpirationTime int64 `default:"3600"`
}

// Load reads .env when present, applies struct defaults and then the
// environment. JWT_SECRET_KEY is mandatory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "apply config defaults")
	}
	cfg.loadEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadEnv() {
	c.Server.Port = utils.GetEnvAsString("PORT", c.Server.Port)
	c.Server.GinMode = utils.GetEnvAsString("GIN_MODE", c.Server.GinMode)
	c.Server.MaxBodyBytes = utils.GetEnvAsInt64("MAX_BODY_BYTES", c.Server.MaxBodyBytes)
	c.Server.ShutdownTimeout = utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.CORSAllowOrigin = utils.GetEnvAsString("CORS_ALLOW_ORIGIN", c.Server.CORSAllowOrigin)

	c.Log.Level = utils.GetEnvAsString("LOG_LEVEL", c.Log.Level)
	c.Log.Production = utils.GetEnvAsBool("LOG_PRODUCTION", c.Log.Production)

	c.Database.loadEnv()

	c.Redis.URL = utils.GetEnvAsString("REDIS_URL", c.Redis.URL)

	c.JWT.SecretKey = utils.GetEnvAsString("JWT_SECRET_KEY", c.JWT.SecretKey)
	c.JWT.Issuer = utils.GetEnvAsString("JWT_ISSUER", c.JWT.Issuer)
	c.JWT.ExpirationTime = utils.GetEnvAsInt64("JWT_EXPIRATION_TIME", c.JWT.ExpirationTime)
}

func (c *Config) validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY is not set")
	}
	if c.JWT.ExpirationTime <= 0 {
		return errors.Errorf("JWT_EXPIRATION_TIME must be positive, got %d", c.JWT.ExpirationTime)
	}
	if c.Database.URI == "" {
		return errors.New("MONGO_URI is not set")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}
