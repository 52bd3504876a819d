package backend

import (
	"fmt"
	"time"

	"walletwatcher/internal/config"
)

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Memory specific; empty keeps everything in process memory only.
	SnapshotPath string

	// Read cache; a zero size disables it.
	CacheSize            int
	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:                 backendType,
		SQLiteDBPath:         appConfig.SQLiteDBPath,
		SnapshotPath:         appConfig.MemorySnapshotPath,
		CacheSize:            appConfig.CacheSize,
		CacheTTL:             appConfig.CacheTTL,
		CacheCleanupInterval: appConfig.CacheCleanupInterval,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}
	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{SQLiteBackend, MemoryBackend}
}
