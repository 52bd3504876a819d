package backend

import (
	"context"
	"fmt"

	"walletwatcher/internal/cache"
	"walletwatcher/internal/log"
	"walletwatcher/internal/storage"
	"walletwatcher/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.CacheSize > 0 {
		f.addCache(ctx, result, config)
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath, "schema_version", store.SchemaVersion())

	return &BackendResult{Store: store, Cleanup: store.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if config.SnapshotPath == "" {
		f.logger.InfoContext(ctx, "Initialized memory backend without snapshot")
		return &BackendResult{Store: memory.New()}, nil
	}

	store, err := memory.NewFromFile(config.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory snapshot: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized memory backend", "snapshot", config.SnapshotPath, "keys", store.Len())

	return &BackendResult{Store: store}, nil
}

// addCache puts a read cache in front of the store and hands expiry of its
// entries to a cache manager that lives as long as the backend.
func (f *DefaultFactory) addCache(ctx context.Context, result *BackendResult, config Config) {
	cached := storage.NewCachedStore(result.Store, config.CacheSize, config.CacheTTL)

	manager := cache.NewManager(f.logger.Logger.With(log.FieldComponent, log.ComponentCache))
	manager.Register(cached.Cache())
	if config.CacheTTL > 0 && config.CacheCleanupInterval > 0 {
		manager.StartCleanup(config.CacheCleanupInterval)
	}

	next := result.Cleanup
	result.Store = cached
	result.Cache = cached.Cache()
	result.Cleanup = func() error {
		manager.Stop()
		stats := cached.Cache().Stats()
		f.logger.DebugContext(ctx, "Storage cache closed", "hits", stats.Hits, "misses", stats.Misses, "size", stats.Size, "hit_ratio", stats.HitRatio())
		if next != nil {
			return next()
		}
		return nil
	}

	f.logger.InfoContext(ctx, "Storage cache enabled", "size", config.CacheSize, "ttl", config.CacheTTL)
}
