package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"walletwatcher/internal/log"
)

// Backends accepted by DATA_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendSQLite}

type Config struct {
	// Storage
	DataBackend        string
	SQLiteDBPath       string
	MemorySnapshotPath string

	// Cache in front of the storage backend
	CacheSize            int
	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	// Logging
	LogLevel string

	// Assistant
	AssistantBaseURL string
	AssistantModel   string
	AssistantAPIKey  string
	AssistantTimeout time.Duration

	// Presentation
	CurrencySymbol string
}

func Load() *Config {
	return &Config{
		DataBackend:        getEnv("DATA_BACKEND", BackendSQLite),
		SQLiteDBPath:       getEnv("SQLITE_DB_PATH", "./data/walletwatcher.db"),
		MemorySnapshotPath: getEnv("MEMORY_SNAPSHOT_PATH", ""),

		CacheSize:            getEnvInt("STORAGE_CACHE_SIZE", 128),
		CacheTTL:             getEnvDuration("STORAGE_CACHE_TTL", 5*time.Minute),
		CacheCleanupInterval: getEnvDuration("STORAGE_CACHE_CLEANUP_INTERVAL", time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		AssistantBaseURL: getEnv("ASSISTANT_BASE_URL", "http://localhost:11434/v1"),
		AssistantModel:   getEnv("ASSISTANT_MODEL", "llama3.2"),
		AssistantAPIKey:  getEnv("ASSISTANT_API_KEY", "ollama"),
		AssistantTimeout: getEnvDuration("ASSISTANT_TIMEOUT", 2*time.Minute),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendSQLite {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.CacheSize < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: cannot be negative", c.CacheSize))
	} else if c.CacheSize > 100000 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at most 100000", c.CacheSize))
	}
	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: cannot be negative", c.CacheTTL))
	}
	if c.CacheSize > 0 && c.CacheTTL > 0 && c.CacheCleanupInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup interval %v: must be at least 1 second", c.CacheCleanupInterval))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.AssistantBaseURL != "" {
		if parsedURL, err := url.Parse(c.AssistantBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid assistant URL '%s': %v", c.AssistantBaseURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid assistant URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}
	if c.AssistantTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid assistant timeout %v: must be at least 1 second", c.AssistantTimeout))
	} else if c.AssistantTimeout > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid assistant timeout %v: must be at most 1 hour", c.AssistantTimeout))
	}

	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// CacheEnabled reports whether reads go through the storage cache.
func (c *Config) CacheEnabled() bool {
	return c.CacheSize > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
