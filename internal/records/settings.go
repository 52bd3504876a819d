package records

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"walletwatcher/internal/auth"
	"walletwatcher/internal/core"
	"walletwatcher/internal/storage"
)

// Settings holds the monthly limit and custom categories of the current
// user. Each value has its own storage key.
type Settings struct {
	store   storage.Store
	session *auth.Session

	loaded    bool
	loadedFor string
	loadedGen uint64
	current   core.Settings
}

func NewSettings(store storage.Store, session *auth.Session) *Settings {
	return &Settings{store: store, session: session}
}

func (s *Settings) sync(ctx context.Context) error {
	username, gen := s.session.Username(), s.session.Generation()
	if s.loaded && s.loadedGen == gen && s.loadedFor == username {
		return nil
	}

	s.loaded = false
	s.current = core.Settings{}
	if username != "" {
		var limit core.Money
		if _, err := storage.GetJSON(ctx, s.store, storage.MonthlyLimitKey(username), &limit); err != nil {
			return fmt.Errorf("load monthly limit: %w", err)
		}
		var custom []string
		if _, err := storage.GetJSON(ctx, s.store, storage.CustomCategoriesKey(username), &custom); err != nil {
			return fmt.Errorf("load custom categories: %w", err)
		}
		s.current = core.Settings{MonthlyLimit: limit, CustomCategories: custom}
	}
	s.loadedFor = username
	s.loadedGen = gen
	s.loaded = true
	return nil
}

func (s *Settings) requireSession(ctx context.Context) error {
	if err := s.sync(ctx); err != nil {
		return err
	}
	if s.loadedFor == "" {
		return core.ErrNoSession
	}
	return nil
}

// Get returns a copy of the current settings with categories sorted.
func (s *Settings) Get(ctx context.Context) (core.Settings, error) {
	if err := s.sync(ctx); err != nil {
		return core.Settings{}, err
	}
	out := s.current
	out.CustomCategories = sortedCopy(s.current.CustomCategories)
	return out, nil
}

// MonthlyLimit is zero when no limit is set.
func (s *Settings) MonthlyLimit(ctx context.Context) (core.Money, error) {
	if err := s.sync(ctx); err != nil {
		return core.Money{}, err
	}
	return s.current.MonthlyLimit, nil
}

func (s *Settings) SetMonthlyLimit(ctx context.Context, limit core.Money) error {
	if limit.Cents < 0 {
		return core.NewValidationError("monthlyLimit", "cannot be negative")
	}
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	if err := storage.SetJSON(ctx, s.store, storage.MonthlyLimitKey(s.loadedFor), limit); err != nil {
		return fmt.Errorf("save monthly limit: %w", err)
	}
	s.current.MonthlyLimit = limit
	return nil
}

func (s *Settings) CustomCategories(ctx context.Context) ([]string, error) {
	if err := s.sync(ctx); err != nil {
		return nil, err
	}
	return sortedCopy(s.current.CustomCategories), nil
}

// AddCustomCategory adds name unless it is already present. Matching is case
// sensitive.
func (s *Settings) AddCustomCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.NewValidationError("category", "cannot be empty")
	}
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	if slices.Contains(s.current.CustomCategories, name) {
		return nil
	}
	return s.saveCategories(ctx, append(slices.Clone(s.current.CustomCategories), name))
}

// DeleteCustomCategory removes name; transactions already using it keep it.
func (s *Settings) DeleteCustomCategory(ctx context.Context, name string) error {
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	idx := slices.Index(s.current.CustomCategories, name)
	if idx < 0 {
		return fmt.Errorf("delete category %s: %w", name, core.ErrNotFound)
	}
	return s.saveCategories(ctx, slices.Delete(slices.Clone(s.current.CustomCategories), idx, idx+1))
}

// Categories is the catalogue offered for expenses: built-in plus custom.
func (s *Settings) Categories(ctx context.Context) ([]string, error) {
	if err := s.sync(ctx); err != nil {
		return nil, err
	}
	return core.MergeCategories(s.current.CustomCategories), nil
}

func (s *Settings) saveCategories(ctx context.Context, categories []string) error {
	if err := storage.SetJSON(ctx, s.store, storage.CustomCategoriesKey(s.loadedFor), categories); err != nil {
		return fmt.Errorf("save custom categories: %w", err)
	}
	s.current.CustomCategories = categories
	return nil
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
