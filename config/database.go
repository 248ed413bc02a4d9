package config

import (
	"time"

	"inotebook/utils"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type DatabaseConfig struct {
	URI             string        `default:"mongodb://localhost:27017"`
	MaxPoolSize     uint64        `default:"100"`
	MinPoolSize     uint64        `default:"10"`
	MaxConnIdleTime time.Duration `default:"60s"`
	DatabaseName    string        `default:"inotebook"`
	NotesCollection string        `default:"notes"`
	RetryWrites     bool          `default:"true"`
}

func (d *DatabaseConfig) loadEnv() {
	d.URI = utils.GetEnvAsString("MONGO_URI", d.URI)
	d.MaxPoolSize = utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", d.MaxPoolSize)
	d.MinPoolSize = utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", d.MinPoolSize)
	// seconds, as in the original deployment files
	d.MaxConnIdleTime = time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", int(d.MaxConnIdleTime/time.Second))) * time.Second
	d.DatabaseName = utils.GetEnvAsString("MONGO_DB", d.DatabaseName)
	d.NotesCollection = utils.GetEnvAsString("MONGO_NOTES_COLLECTION", d.NotesCollection)
	d.RetryWrites = utils.GetEnvAsBool("MONGO_RETRY_WRITES", d.RetryWrites)
}

// ClientOptions maps the config onto driver options.
func (d DatabaseConfig) ClientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(d.URI).
		SetMaxPoolSize(d.MaxPoolSize).
		SetMinPoolSize(d.MinPoolSize).
		SetMaxConnIdleTime(d.MaxConnIdleTime).
		SetRetryWrites(d.RetryWrites)
}
