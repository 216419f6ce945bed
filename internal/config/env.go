package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	// Try to load .env file from current directory or project root
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Variables set in the process environment win over .env values
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			fmt.Printf("✅ Loaded environment variables from %s\n", envPath)
			break
		}
	}

	return nil
}

// ApplyEnv overrides configuration values with environment variables
func (c *Config) ApplyEnv() error {
	// Storage
	setString(&c.Storage.AccountID, "CLOUDFLARE_ACCOUNT_ID")
	setString(&c.Storage.AccessKeyID, "CLOUDFLARE_ACCESS_KEY_ID")
	setString(&c.Storage.SecretAccessKey, "CLOUDFLARE_SECRET_ACCESS_KEY")
	setString(&c.Storage.Bucket, "R2_BUCKET_NAME")
	setString(&c.Storage.PublicHost, "R2_PUBLIC_HOST")
	setString(&c.Storage.Endpoint, "R2_ENDPOINT")

	// Database
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.DSN, "DATABASE_URL")

	// Server
	setString(&c.Server.Host, "HOST")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Environment, "APP_ENV")
	if origins := strings.TrimSpace(os.Getenv("FRONTEND_ORIGIN")); origins != "" {
		c.Server.AllowedOrigins = splitOrigins(origins)
	}

	// Lock
	setString(&c.Lock.Backend, "LOCK_BACKEND")
	setString(&c.Lock.RedisAddr, "REDIS_ADDR")
	setString(&c.Lock.RedisPassword, "REDIS_PASSWORD")
	if err := setInt(&c.Lock.RedisDB, "REDIS_DB"); err != nil {
		return err
	}

	// Collection
	setString(&c.Collection.Timezone, "COLLECTION_TIMEZONE")
	if err := setInt(&c.Collection.RequiredRecordings, "REQUIRED_RECORDINGS"); err != nil {
		return err
	}
	if err := setInt(&c.Collection.RequiredSpontaneous, "REQUIRED_SPONTANEOUS"); err != nil {
		return err
	}

	c.Log.Development = !c.Server.IsProduction()
	return nil
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func setString(dst *string, key string) {
	*dst = getEnvOrDefault(key, *dst)
}

func setInt(dst *int, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	*dst = v
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
