package storage

import (
	"context"
	"time"

	"walletwatcher/internal/cache"
)

// CachedStore is a read-through cache in front of another Store. Writes go to
// the backend first and only then update the cache, so a failed write never
// leaves a value visible that was not persisted.
type CachedStore struct {
	next  Store
	cache *cache.LRUCache[[]byte]
}

func NewCachedStore(next Store, size int, ttl time.Duration) *CachedStore {
	return &CachedStore{next: next, cache: cache.NewLRUCache[[]byte](size, ttl)}
}

// Cache exposes the underlying cache for registration with a cache.Manager.
func (s *CachedStore) Cache() *cache.LRUCache[[]byte] {
	return s.cache
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, true, nil
	}
	v, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	s.cache.Set(key, v)
	return v, true, nil
}

func (s *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		s.cache.Delete(key)
		return err
	}
	s.cache.Set(key, append([]byte(nil), value...))
	return nil
}

func (s *CachedStore) Remove(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return s.next.Remove(ctx, key)
}
