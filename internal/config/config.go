package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Collection CollectionConfig `yaml:"collection"`
	Lock       LockConfig       `yaml:"lock"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	Environment    string        `yaml:"environment"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

// DatabaseConfig selects the metadata store
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite3 or postgres
	DSN    string `yaml:"dsn"`
}

// StorageConfig holds Cloudflare R2 credentials and naming
type StorageConfig struct {
	AccountID       string `yaml:"account_id"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	PublicHost      string `yaml:"public_host,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty"`
	Region          string `yaml:"region,omitempty"`
	UseSSL          bool   `yaml:"use_ssl"`
}

// CollectionConfig holds the recording quota and participant rules
type CollectionConfig struct {
	RequiredRecordings  int    `yaml:"required_recordings"`
	RequiredSpontaneous int    `yaml:"required_spontaneous"`
	ParticipantPrefix   string `yaml:"participant_prefix"`
	Timezone            string `yaml:"timezone"`
}

// LockConfig selects the speaker creation lock backend
type LockConfig struct {
	Backend       string        `yaml:"backend"` // none, local or redis
	RedisAddr     string        `yaml:"redis_addr,omitempty"`
	RedisPassword string        `yaml:"redis_password,omitempty"`
	RedisDB       int           `yaml:"redis_db,omitempty"`
	TTL           time.Duration `yaml:"ttl,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Development bool `yaml:"development"`
}

// EndpointHost returns the S3 API host for the configured account
func (s StorageConfig) EndpointHost() string {
	if s.Endpoint != "" {
		return strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	}
	return fmt.Sprintf("%s.r2.cloudflarestorage.com", s.AccountID)
}

// PublicHostname returns the host serving public object URLs
func (s StorageConfig) PublicHostname() string {
	if s.PublicHost != "" {
		return s.PublicHost
	}
	accountHash := strings.Split(s.AccountID, ".")[0]
	return fmt.Sprintf("pub-%s.r2.dev", accountHash)
}

// Location resolves the collection timezone, falling back to UTC
func (c CollectionConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Address returns host:port for the HTTP listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// LoadFile reads a YAML configuration file on top of the defaults.
// A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Load is the main entry point for configuration loading: defaults, then the
// YAML file, then .env files, then process environment.
func Load(path string) (*Config, error) {
	if path == "" {
		path = getEnvOrDefault("TWI_CONFIG", DefaultConfigPath)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
