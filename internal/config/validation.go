package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one
)

// Validate checks the configuration for missing or inconsistent values
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := ValidateDriver(c.Database.Driver); err != nil {
		return err
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database DSN is required")
	}
	if err := ValidateQuota(c.Collection.RequiredRecordings, c.Collection.RequiredSpontaneous); err != nil {
		return err
	}
	if err := ValidateLockBackend(c.Lock); err != nil {
		return err
	}
	if err := ValidateTimezone(c.Collection.Timezone); err != nil {
		return err
	}
	for name, timeout := range map[string]time.Duration{
		"read":  c.Server.ReadTimeout,
		"write": c.Server.WriteTimeout,
		"idle":  c.Server.IdleTimeout,
	} {
		if err := ValidateTimeout(timeout, name); err != nil {
			return err
		}
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	return nil
}

// Validate checks that the object store credentials are present
func (s StorageConfig) Validate() error {
	var missing []string
	if s.AccountID == "" && s.Endpoint == "" {
		missing = append(missing, "CLOUDFLARE_ACCOUNT_ID")
	}
	if s.AccessKeyID == "" {
		missing = append(missing, "CLOUDFLARE_ACCESS_KEY_ID")
	}
	if s.SecretAccessKey == "" {
		missing = append(missing, "CLOUDFLARE_SECRET_ACCESS_KEY")
	}
	if s.Bucket == "" {
		missing = append(missing, "R2_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing storage configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateDriver validates the metadata store driver name
func ValidateDriver(driver string) error {
	switch driver {
	case "sqlite3", "postgres":
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q (expected sqlite3 or postgres)", driver)
	}
}

// ValidateQuota validates the recording quota
func ValidateQuota(total, spontaneous int) error {
	if total <= 0 {
		return fmt.Errorf("required recordings must be positive")
	}
	if spontaneous < 0 {
		return fmt.Errorf("required spontaneous recordings cannot be negative")
	}
	if spontaneous > total {
		return fmt.Errorf("required spontaneous recordings (%d) exceed total (%d)", spontaneous, total)
	}
	return nil
}

// ValidateTimezone checks that the collection timezone names a known zone.
// Empty means UTC.
func ValidateTimezone(name string) error {
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("invalid collection timezone %q: %w", name, err)
	}
	return nil
}

// ValidateLockBackend validates the speaker lock settings
func ValidateLockBackend(lock LockConfig) error {
	switch lock.Backend {
	case "none", "local":
		return nil
	case "redis":
		if lock.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when lock backend is redis")
		}
		if lock.TTL <= 0 {
			return fmt.Errorf("lock TTL must be positive")
		}
		return nil
	default:
		return fmt.Errorf("unsupported lock backend %q (expected none, local or redis)", lock.Backend)
	}
}
