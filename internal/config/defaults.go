package config

import (
	"time"

	"twi-speech/internal/app/model"
)

const (
	DefaultConfigPath = "config.yaml"

	// Server defaults
	DefaultHost           = "0.0.0.0"
	DefaultHTTPPort       = "8000"
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 60 * time.Second
	DefaultIdleTimeout    = 120 * time.Second
	DefaultMaxUploadBytes = 50 << 20

	// Database defaults
	DefaultDatabaseDriver = "sqlite3"
	DefaultSQLiteDSN      = "file:data/twi_speech.db?cache=shared&mode=rwc&_busy_timeout=5000"

	// Collection defaults
	DefaultParticipantPrefix = "TWI_Speaker_"
	DefaultTimezone          = "Africa/Accra"

	// Lock defaults
	DefaultLockBackend = "local"
	DefaultLockTTL     = 10 * time.Second

	DefaultStorageRegion = "auto"
)

// Default returns a configuration populated with defaults only
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           DefaultHost,
			Port:           DefaultHTTPPort,
			Environment:    "development",
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
			IdleTimeout:    DefaultIdleTimeout,
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Database: DatabaseConfig{
			Driver: DefaultDatabaseDriver,
			DSN:    DefaultSQLiteDSN,
		},
		Storage: StorageConfig{
			Region: DefaultStorageRegion,
			UseSSL: true,
		},
		Collection: CollectionConfig{
			RequiredRecordings:  model.DefaultRequiredRecordings,
			RequiredSpontaneous: model.DefaultRequiredSpontaneous,
			ParticipantPrefix:   DefaultParticipantPrefix,
			Timezone:            DefaultTimezone,
		},
		Lock: LockConfig{
			Backend: DefaultLockBackend,
			TTL:     DefaultLockTTL,
		},
	}
}
