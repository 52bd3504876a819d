// Package auth holds the identity records and the current session.
package auth

import (
	"context"
	"fmt"

	"walletwatcher/internal/core"
	"walletwatcher/internal/storage"
)

// Session is the single current user, mirrored to storage so that it
// survives a restart. It is handed to every record store.
type Session struct {
	store storage.Store
	user  *core.User
	gen   uint64
}

func NewSession(store storage.Store) *Session {
	return &Session{store: store}
}

// Load restores the session persisted by a previous run.
func (s *Session) Load(ctx context.Context) error {
	var u core.User
	ok, err := storage.GetJSON(ctx, s.store, storage.SessionKey, &u)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	s.gen++
	if !ok || u.Username == "" {
		s.user = nil
		return nil
	}
	s.user = &u
	return nil
}

// Generation changes every time the session is loaded, set or cleared.
// Stores compare it to decide whether their cached records are still valid.
func (s *Session) Generation() uint64 {
	return s.gen
}

// Current returns the logged in user, if any.
func (s *Session) Current() (core.User, bool) {
	if s.user == nil {
		return core.User{}, false
	}
	return *s.user, true
}

// Username is empty when nobody is logged in.
func (s *Session) Username() string {
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

func (s *Session) set(ctx context.Context, username string) error {
	u := core.User{Username: username}
	if err := storage.SetJSON(ctx, s.store, storage.SessionKey, u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.user = &u
	s.gen++
	return nil
}

func (s *Session) clear(ctx context.Context) error {
	s.user = nil
	s.gen++
	if err := s.store.Remove(ctx, storage.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
