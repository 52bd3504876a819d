package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"walletwatcher/internal/core"
	"walletwatcher/internal/storage"
)

// Identity manages the username/password records. Passwords are kept in
// plain text.
type Identity struct {
	store   storage.Store
	session *Session
}

func NewIdentity(store storage.Store, session *Session) *Identity {
	return &Identity{store: store, session: session}
}

// Session returns the session the identity store logs users into.
func (i *Identity) Session() *Session {
	return i.session
}

func (i *Identity) users(ctx context.Context) ([]core.Credentials, error) {
	var users []core.Credentials
	if _, err := storage.GetJSON(ctx, i.store, storage.UsersKey, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (i *Identity) saveUsers(ctx context.Context, users []core.Credentials) error {
	if users == nil {
		users = []core.Credentials{}
	}
	if err := storage.SetJSON(ctx, i.store, storage.UsersKey, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func indexOf(users []core.Credentials, username string) int {
	return slices.IndexFunc(users, func(c core.Credentials) bool { return c.Username == username })
}

// Signup creates the record and logs the new user in.
func (i *Identity) Signup(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, core.NewValidationError("username", "cannot be empty")
	}
	if password == "" {
		return core.User{}, core.ErrMissingPassword
	}

	users, err := i.users(ctx)
	if err != nil {
		return core.User{}, err
	}
	if indexOf(users, username) >= 0 {
		return core.User{}, core.ErrDuplicateUsername
	}

	users = append(users, core.Credentials{Username: username, Password: password})
	if err := i.saveUsers(ctx, users); err != nil {
		return core.User{}, err
	}
	if err := i.session.set(ctx, username); err != nil {
		return core.User{}, err
	}
	return core.User{Username: username}, nil
}

// Login matches both fields exactly, case included.
func (i *Identity) Login(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	users, err := i.users(ctx)
	if err != nil {
		return core.User{}, err
	}
	idx := indexOf(users, username)
	if idx < 0 || users[idx].Password != password {
		return core.User{}, core.ErrInvalidCredentials
	}
	if err := i.session.set(ctx, username); err != nil {
		return core.User{}, err
	}
	return core.User{Username: username}, nil
}

func (i *Identity) Logout(ctx context.Context) error {
	return i.session.clear(ctx)
}

// UpdateCredentials changes the username and/or password of currentUsername.
// A blank newPassword keeps the old one; a blank or unchanged newUsername
// keeps the name. Renaming moves every per-user collection to the new name.
func (i *Identity) UpdateCredentials(ctx context.Context, currentUsername, currentPassword, newUsername, newPassword string) (core.User, error) {
	currentUsername = strings.TrimSpace(currentUsername)
	users, err := i.users(ctx)
	if err != nil {
		return core.User{}, err
	}
	idx := indexOf(users, currentUsername)
	if idx < 0 {
		return core.User{}, core.ErrUserNotFound
	}
	if users[idx].Password != currentPassword {
		return core.User{}, core.ErrIncorrectPassword
	}

	newUsername = strings.TrimSpace(newUsername)
	renamed := newUsername != "" && newUsername != currentUsername
	if renamed && indexOf(users, newUsername) >= 0 {
		return core.User{}, core.ErrUsernameTaken
	}

	if renamed {
		users[idx].Username = newUsername
	}
	if newPassword != "" {
		users[idx].Password = newPassword
	}
	if err := i.saveUsers(ctx, users); err != nil {
		return core.User{}, err
	}

	if renamed {
		if err := i.migrate(ctx, currentUsername, newUsername); err != nil {
			return core.User{}, err
		}
	}

	final := users[idx].Username
	if i.session.Username() == currentUsername {
		if err := i.session.set(ctx, final); err != nil {
			return core.User{}, err
		}
	}
	return core.User{Username: final}, nil
}

// DeleteAccount removes the record and all data of username.
func (i *Identity) DeleteAccount(ctx context.Context, username string) error {
	users, err := i.users(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(users, username)
	if idx < 0 {
		return core.ErrUserNotFound
	}

	users = slices.Delete(users, idx, idx+1)
	if err := i.saveUsers(ctx, users); err != nil {
		return err
	}
	for _, key := range storage.UserKeys(username) {
		if err := i.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}

	if i.session.Username() == username {
		return i.session.clear(ctx)
	}
	return nil
}

// migrate moves every per-user key from one username to another. The owner
// field of transactions and goals is rewritten on the way.
func (i *Identity) migrate(ctx context.Context, from, to string) error {
	owned := map[string]bool{
		storage.TransactionsKey(from): true,
		storage.GoalsKey(from):        true,
	}
	oldKeys, newKeys := storage.UserKeys(from), storage.UserKeys(to)
	for n, key := range oldKeys {
		if !owned[key] {
			if err := storage.Move(ctx, i.store, key, newKeys[n]); err != nil {
				return fmt.Errorf("migrate %s: %w", key, err)
			}
			continue
		}
		if err := i.migrateOwned(ctx, key, newKeys[n], to); err != nil {
			return fmt.Errorf("migrate %s: %w", key, err)
		}
	}
	return nil
}

// migrateOwned copies a record list, setting userId on every element, and
// deletes the source only once the copy is stored. Fields other than userId
// pass through untouched.
func (i *Identity) migrateOwned(ctx context.Context, from, to, owner string) error {
	var records []map[string]json.RawMessage
	ok, err := storage.GetJSON(ctx, i.store, from, &records)
	if err != nil || !ok {
		return err
	}
	ownerJSON, err := json.Marshal(owner)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r != nil {
			r["userId"] = ownerJSON
		}
	}
	if err := storage.SetJSON(ctx, i.store, to, records); err != nil {
		return err
	}
	return i.store.Remove(ctx, from)
}
