// Package records implements the per-user record stores. Each store keeps
// the collection of the current session user in memory and writes the whole
// collection back on every mutation.
package records

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"walletwatcher/internal/auth"
	"walletwatcher/internal/core"
	"walletwatcher/internal/storage"
)

// newID mints time-ordered ids with a random suffix.
var newID = func() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// accessors tell a Collection where the id and owner of a record live.
type accessors[T any] struct {
	id    func(*T) *string
	owner func(*T) *string
}

// Collection is a list of records stored under one key per user.
type Collection[T any] struct {
	store   storage.Store
	session *auth.Session
	key     func(username string) string
	fields  accessors[T]

	loaded    bool
	loadedFor string
	loadedGen uint64
	items     []T
}

func newCollection[T any](store storage.Store, session *auth.Session, key func(string) string, fields accessors[T]) *Collection[T] {
	return &Collection[T]{store: store, session: session, key: key, fields: fields}
}

// sync reloads the collection whenever the session changed since the last
// load, so one user's records never show up for another and a deleted or
// renamed account's records are never served again.
func (c *Collection[T]) sync(ctx context.Context) error {
	username, gen := c.session.Username(), c.session.Generation()
	if c.loaded && c.loadedGen == gen && c.loadedFor == username {
		return nil
	}

	c.items = nil
	c.loaded = false
	if username != "" {
		var items []T
		if _, err := storage.GetJSON(ctx, c.store, c.key(username), &items); err != nil {
			return fmt.Errorf("load records: %w", err)
		}
		c.items = items
	}
	c.loadedFor = username
	c.loadedGen = gen
	c.loaded = true
	return nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := storage.SetJSON(ctx, c.store, c.key(c.loadedFor), items); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	c.items = items
	return nil
}

// List returns a copy of the current user's records; empty without a session.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if err := c.sync(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(c.items), nil
}

// Add mints an id, assigns the current user as owner and persists.
func (c *Collection[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := c.sync(ctx); err != nil {
		return zero, err
	}
	if c.loadedFor == "" {
		return zero, core.ErrNoSession
	}

	id, err := newID()
	if err != nil {
		return zero, fmt.Errorf("mint id: %w", err)
	}
	*c.fields.id(&rec) = id
	*c.fields.owner(&rec) = c.loadedFor

	if err := c.save(ctx, append(slices.Clone(c.items), rec)); err != nil {
		return zero, err
	}
	return rec, nil
}

func (c *Collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return *c.fields.id(&item) == id })
}

// Update replaces the record with the same id. The stored owner is kept.
func (c *Collection[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := c.sync(ctx); err != nil {
		return zero, err
	}
	if c.loadedFor == "" {
		return zero, core.ErrNoSession
	}

	id := *c.fields.id(&rec)
	idx := c.indexOf(id)
	if idx < 0 {
		return zero, fmt.Errorf("update %s: %w", id, core.ErrNotFound)
	}
	*c.fields.owner(&rec) = *c.fields.owner(&c.items[idx])

	items := slices.Clone(c.items)
	items[idx] = rec
	if err := c.save(ctx, items); err != nil {
		return zero, err
	}
	return rec, nil
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := c.sync(ctx); err != nil {
		return zero, err
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return zero, fmt.Errorf("get %s: %w", id, core.ErrNotFound)
	}
	return c.items[idx], nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.sync(ctx); err != nil {
		return err
	}
	if c.loadedFor == "" {
		return core.ErrNoSession
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, core.ErrNotFound)
	}
	return c.save(ctx, slices.Delete(slices.Clone(c.items), idx, idx+1))
}
