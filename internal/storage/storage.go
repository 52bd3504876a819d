// Package storage is the key/value persistence port. Values are JSON
// documents stored under string keys; every per-user collection lives under
// its own key.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is implemented by every backend.
type Store interface {
	// Get returns the raw value stored under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the value under key into v. It reports false, leaving v
// untouched, when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Move copies the value under from to to and then deletes from.
// It does nothing when from is absent.
func Move(ctx context.Context, s Store, from, to string) error {
	raw, ok, err := s.Get(ctx, from)
	if err != nil {
		return fmt.Errorf("get %s: %w", from, err)
	}
	if !ok {
		return nil
	}
	if err := s.Set(ctx, to, raw); err != nil {
		return fmt.Errorf("set %s: %w", to, err)
	}
	if err := s.Remove(ctx, from); err != nil {
		return fmt.Errorf("remove %s: %w", from, err)
	}
	return nil
}
