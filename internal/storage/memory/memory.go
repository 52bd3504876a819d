// Package memory is an in-process storage backend. With a snapshot path it
// also rewrites a JSON file after each mutation and reloads it on start, which
// gives command line sessions the persistence a browser's local storage has.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	mu       sync.Mutex
	items    map[string][]byte
	snapshot string
}

func New() *Store {
	return &Store{items: make(map[string][]byte)}
}

// NewFromFile loads the snapshot at path when it exists and keeps it updated.
func NewFromFile(path string) (*Store, error) {
	s := New()
	s.snapshot = path

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var items map[string]string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for k, v := range items {
		s.items[k] = []byte(v)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), value...)
	return s.persist()
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	return s.persist()
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// persist rewrites the snapshot; callers hold mu.
func (s *Store) persist() error {
	if s.snapshot == "" {
		return nil
	}
	// Values are kept as JSON strings so they reload byte for byte.
	out := make(map[string]string, len(s.items))
	for k, v := range s.items {
		out[k] = string(v)
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.snapshot), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	tmp := s.snapshot + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.snapshot); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
