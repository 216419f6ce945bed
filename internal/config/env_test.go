package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.Storage.AccountID = "abc123"
	cfg.Storage.AccessKeyID = "key"
	cfg.Storage.SecretAccessKey = "secret"
	cfg.Storage.Bucket = "twi-recordings"
	return cfg
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct")
	t.Setenv("CLOUDFLARE_ACCESS_KEY_ID", "ak")
	t.Setenv("CLOUDFLARE_SECRET_ACCESS_KEY", "sk")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/twi?sslmode=disable")
	t.Setenv("FRONTEND_ORIGIN", "https://a.example.com, https://b.example.com ,")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOCK_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REQUIRED_RECORDINGS", "10")
	t.Setenv("REQUIRED_SPONTANEOUS", "2")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "acct", cfg.Storage.AccountID)
	assert.Equal(t, "bucket", cfg.Storage.Bucket)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, "redis", cfg.Lock.Backend)
	assert.Equal(t, 2, cfg.Lock.RedisDB)
	assert.Equal(t, 10, cfg.Collection.RequiredRecordings)
	assert.Equal(t, 2, cfg.Collection.RequiredSpontaneous)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_InvalidInteger(t *testing.T) {
	t.Setenv("REQUIRED_RECORDINGS", "lots")

	cfg := Default()
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUIRED_RECORDINGS")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "8080"
  read_timeout: 5s
  allowed_origins: ["https://collect.example.org"]
storage:
  account_id: yaml-account
  bucket: yaml-bucket
collection:
  required_recordings: 50
  required_spontaneous: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://collect.example.org"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "yaml-bucket", cfg.Storage.Bucket)
	assert.Equal(t, 50, cfg.Collection.RequiredRecordings)
	assert.Equal(t, DefaultParticipantPrefix, cfg.Collection.ParticipantPrefix)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:          "missing credentials",
			mutate:        func(c *Config) { c.Storage.AccessKeyID = ""; c.Storage.Bucket = "" },
			errorContains: "CLOUDFLARE_ACCESS_KEY_ID, R2_BUCKET_NAME",
		},
		{
			name:          "unsupported driver",
			mutate:        func(c *Config) { c.Database.Driver = "mysql" },
			errorContains: "unsupported database driver",
		},
		{
			name:          "spontaneous exceeds total",
			mutate:        func(c *Config) { c.Collection.RequiredRecordings = 5; c.Collection.RequiredSpontaneous = 6 },
			errorContains: "exceed total",
		},
		{
			name:          "redis without address",
			mutate:        func(c *Config) { c.Lock.Backend = "redis" },
			errorContains: "REDIS_ADDR",
		},
		{
			name:          "unknown lock backend",
			mutate:        func(c *Config) { c.Lock.Backend = "etcd" },
			errorContains: "unsupported lock backend",
		},
		{
			name:          "unknown timezone",
			mutate:        func(c *Config) { c.Collection.Timezone = "Africa/Kumasi" },
			errorContains: "invalid collection timezone \"Africa/Kumasi\"",
		},
		{
			name:   "empty timezone means UTC",
			mutate: func(c *Config) { c.Collection.Timezone = "" },
		},
		{
			name:          "zero timeout",
			mutate:        func(c *Config) { c.Server.IdleTimeout = 0 },
			errorContains: "idle timeout must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestStorageConfig_Hosts(t *testing.T) {
	s := StorageConfig{AccountID: "abc123"}
	assert.Equal(t, "abc123.r2.cloudflarestorage.com", s.EndpointHost())
	assert.Equal(t, "pub-abc123.r2.dev", s.PublicHostname())

	s.Endpoint = "https://minio.local:9000"
	s.PublicHost = "media.example.org"
	assert.Equal(t, "minio.local:9000", s.EndpointHost())
	assert.Equal(t, "media.example.org", s.PublicHostname())
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct")
	t.Setenv("CLOUDFLARE_ACCESS_KEY_ID", "ak")
	t.Setenv("CLOUDFLARE_SECRET_ACCESS_KEY", "sk")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("COLLECTION_TIMEZONE", "GMT+0/Accra")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid collection timezone")
}

func TestCollectionConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, CollectionConfig{}.Location())
	assert.Equal(t, time.UTC, CollectionConfig{Timezone: "Not/AZone"}.Location())

	loc := CollectionConfig{Timezone: "UTC"}.Location()
	assert.Equal(t, "UTC", loc.String())
}
