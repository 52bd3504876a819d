package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DataBackend:          BackendSQLite,
		SQLiteDBPath:         filepath.Join(t.TempDir(), "data", "test.db"),
		CacheSize:            64,
		CacheTTL:             time.Minute,
		CacheCleanupInterval: 30 * time.Second,
		LogLevel:             "info",
		AssistantBaseURL:     "http://localhost:11434/v1",
		AssistantModel:       "llama3.2",
		AssistantTimeout:     time.Minute,
		CurrencySymbol:       "$",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid sqlite backend config",
			modify: func(*Config) {},
		},
		{
			name:   "valid memory backend config",
			modify: func(c *Config) { c.DataBackend = BackendMemory; c.SQLiteDBPath = "" },
		},
		{
			name:   "cache disabled needs no cleanup interval",
			modify: func(c *Config) { c.CacheSize = 0; c.CacheCleanupInterval = 0 },
		},
		{
			name:        "invalid backend",
			modify:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets'",
		},
		{
			name:        "empty sqlite path",
			modify:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "negative cache size",
			modify:      func(c *Config) { c.CacheSize = -1 },
			wantErr:     true,
			errorString: "invalid cache size -1",
		},
		{
			name:        "cleanup interval too short",
			modify:      func(c *Config) { c.CacheCleanupInterval = 10 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid cache cleanup interval",
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "assistant url scheme",
			modify:      func(c *Config) { c.AssistantBaseURL = "ftp://models.local" },
			wantErr:     true,
			errorString: "invalid assistant URL scheme 'ftp'",
		},
		{
			name:        "assistant timeout too short",
			modify:      func(c *Config) { c.AssistantTimeout = 0 },
			wantErr:     true,
			errorString: "invalid assistant timeout",
		},
		{
			name:        "blank currency symbol",
			modify:      func(c *Config) { c.CurrencySymbol = " " },
			wantErr:     true,
			errorString: "currency symbol cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataBackend = "postgres"
	cfg.LogLevel = "loud"
	cfg.CurrencySymbol = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "\n- "); n != 3 {
		t.Errorf("expected 3 problems, got %d: %v", n, err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"DATA_BACKEND", "SQLITE_DB_PATH", "STORAGE_CACHE_SIZE", "STORAGE_CACHE_TTL", "LOG_LEVEL", "ASSISTANT_TIMEOUT", "CURRENCY_SYMBOL"} {
			t.Setenv(key, "")
		}
		cfg := Load()
		if cfg.DataBackend != BackendSQLite {
			t.Errorf("DataBackend = %q, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/walletwatcher.db" {
			t.Errorf("SQLiteDBPath = %q", cfg.SQLiteDBPath)
		}
		if cfg.CacheSize != 128 || cfg.CacheTTL != 5*time.Minute {
			t.Errorf("cache defaults = %d/%v", cfg.CacheSize, cfg.CacheTTL)
		}
		if cfg.LogLevel != "info" || cfg.AssistantTimeout != 2*time.Minute || cfg.CurrencySymbol != "$" {
			t.Errorf("unexpected defaults %+v", cfg)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("MEMORY_SNAPSHOT_PATH", "/tmp/ww.json")
		t.Setenv("STORAGE_CACHE_SIZE", "0")
		t.Setenv("STORAGE_CACHE_TTL", "90s")
		t.Setenv("ASSISTANT_MODEL", "gpt-4o-mini")
		t.Setenv("CURRENCY_SYMBOL", "€")

		cfg := Load()
		if cfg.DataBackend != "memory" || cfg.MemorySnapshotPath != "/tmp/ww.json" {
			t.Errorf("storage overrides not applied: %+v", cfg)
		}
		if cfg.CacheSize != 0 || cfg.CacheEnabled() {
			t.Errorf("cache size override not applied: %d", cfg.CacheSize)
		}
		if cfg.CacheTTL != 90*time.Second {
			t.Errorf("CacheTTL = %v", cfg.CacheTTL)
		}
		if cfg.AssistantModel != "gpt-4o-mini" || cfg.CurrencySymbol != "€" {
			t.Errorf("assistant/currency overrides not applied: %+v", cfg)
		}
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("STORAGE_CACHE_SIZE", "lots")
		t.Setenv("ASSISTANT_TIMEOUT", "soon")
		cfg := Load()
		if cfg.CacheSize != 128 || cfg.AssistantTimeout != 2*time.Minute {
			t.Errorf("expected defaults, got %d/%v", cfg.CacheSize, cfg.AssistantTimeout)
		}
	})
}
