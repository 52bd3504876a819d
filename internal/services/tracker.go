// Package services wires the session, identity and record stores together
// and derives the dashboard, review and report views from them.
package services

import (
	"context"

	"walletwatcher/internal/auth"
	"walletwatcher/internal/core"
	"walletwatcher/internal/log"
	"walletwatcher/internal/records"
	"walletwatcher/internal/storage"
)

// Tracker is the application facade used by the command line.
type Tracker struct {
	session      *auth.Session
	identity     *auth.Identity
	transactions *records.Transactions
	goals        *records.Goals
	settings     *records.Settings
	logger       *log.Logger
}

func NewTracker(store storage.Store, logger *log.Logger) *Tracker {
	session := auth.NewSession(store)
	return &Tracker{
		session:      session,
		identity:     auth.NewIdentity(store, session),
		transactions: records.NewTransactions(store, session),
		goals:        records.NewGoals(store, session),
		settings:     records.NewSettings(store, session),
		logger:       logger,
	}
}

// Load restores the session left by a previous run.
func (t *Tracker) Load(ctx context.Context) error {
	return t.session.Load(ctx)
}

func (t *Tracker) CurrentUser() (core.User, bool) {
	return t.session.Current()
}

func (t *Tracker) requireUser() (core.User, error) {
	u, ok := t.session.Current()
	if !ok {
		return core.User{}, core.ErrNoSession
	}
	return u, nil
}

func (t *Tracker) record(ctx context.Context, component, op, msg string, fields log.LogFields, err error) {
	if _, ok := fields[log.FieldUsername]; !ok {
		fields = fields.WithUser(t.session.Username())
	}
	t.logger.WithComponent(component).LogOutcome(ctx, msg, fields.WithOperation(op), err)
}

func (t *Tracker) Signup(ctx context.Context, username, password string) (core.User, error) {
	u, err := t.identity.Signup(ctx, username, password)
	t.record(ctx, log.ComponentAuth, log.OpSignup, "Signup", log.NewFields().With(log.FieldUsername, username), err)
	return u, err
}

func (t *Tracker) Login(ctx context.Context, username, password string) (core.User, error) {
	u, err := t.identity.Login(ctx, username, password)
	t.record(ctx, log.ComponentAuth, log.OpLogin, "Login", log.NewFields().With(log.FieldUsername, username), err)
	return u, err
}

func (t *Tracker) Logout(ctx context.Context) error {
	fields := log.NewFields().WithUser(t.session.Username())
	err := t.identity.Logout(ctx)
	t.record(ctx, log.ComponentAuth, log.OpLogout, "Logout", fields, err)
	return err
}

// UpdateCredentials edits the account of the current user.
func (t *Tracker) UpdateCredentials(ctx context.Context, currentPassword, newUsername, newPassword string) (core.User, error) {
	u, err := t.requireUser()
	if err != nil {
		return core.User{}, err
	}
	updated, err := t.identity.UpdateCredentials(ctx, u.Username, currentPassword, newUsername, newPassword)
	t.record(ctx, log.ComponentAuth, log.OpUpdate, "Credentials updated",
		log.NewFields().With("previous_username", u.Username), err)
	return updated, err
}

// DeleteAccount removes the current user and all their data.
func (t *Tracker) DeleteAccount(ctx context.Context) error {
	u, err := t.requireUser()
	if err != nil {
		return err
	}
	err = t.identity.DeleteAccount(ctx, u.Username)
	t.record(ctx, log.ComponentAuth, log.OpDelete, "Account deleted", log.NewFields().With(log.FieldUsername, u.Username), err)
	return err
}

func (t *Tracker) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return t.transactions.List(ctx)
}

func (t *Tracker) Transaction(ctx context.Context, id string) (core.Transaction, error) {
	return t.transactions.Get(ctx, id)
}

func (t *Tracker) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	added, err := t.transactions.Add(ctx, tx)
	t.record(ctx, log.ComponentRecords, log.OpCreate, "Transaction saved", log.NewFields().WithTransaction(added), err)
	return added, err
}

func (t *Tracker) UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	updated, err := t.transactions.Update(ctx, tx)
	t.record(ctx, log.ComponentRecords, log.OpUpdate, "Transaction updated", log.NewFields().WithTransaction(tx), err)
	return updated, err
}

func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	err := t.transactions.Delete(ctx, id)
	t.record(ctx, log.ComponentRecords, log.OpDelete, "Transaction deleted", log.NewFields().WithRecord("transaction", id), err)
	return err
}

func (t *Tracker) Goals(ctx context.Context) ([]core.FinancialGoal, error) {
	return t.goals.List(ctx)
}

func (t *Tracker) Goal(ctx context.Context, id string) (core.FinancialGoal, error) {
	return t.goals.Get(ctx, id)
}

func (t *Tracker) AddGoal(ctx context.Context, g core.FinancialGoal) (core.FinancialGoal, error) {
	added, err := t.goals.Add(ctx, g)
	t.record(ctx, log.ComponentRecords, log.OpCreate, "Goal saved", log.NewFields().WithRecord("goal", added.ID), err)
	return added, err
}

func (t *Tracker) UpdateGoal(ctx context.Context, g core.FinancialGoal) (core.FinancialGoal, error) {
	updated, err := t.goals.Update(ctx, g)
	t.record(ctx, log.ComponentRecords, log.OpUpdate, "Goal updated", log.NewFields().WithRecord("goal", g.ID), err)
	return updated, err
}

func (t *Tracker) DeleteGoal(ctx context.Context, id string) error {
	err := t.goals.Delete(ctx, id)
	t.record(ctx, log.ComponentRecords, log.OpDelete, "Goal deleted", log.NewFields().WithRecord("goal", id), err)
	return err
}

func (t *Tracker) Settings(ctx context.Context) (core.Settings, error) {
	return t.settings.Get(ctx)
}

func (t *Tracker) Categories(ctx context.Context) ([]string, error) {
	return t.settings.Categories(ctx)
}

func (t *Tracker) SetMonthlyLimit(ctx context.Context, limit core.Money) error {
	err := t.settings.SetMonthlyLimit(ctx, limit)
	t.record(ctx, log.ComponentSettings, log.OpUpdate, "Monthly limit set",
		log.NewFields().With(log.FieldAmountCents, limit.Cents), err)
	return err
}

func (t *Tracker) AddCategory(ctx context.Context, name string) error {
	err := t.settings.AddCustomCategory(ctx, name)
	t.record(ctx, log.ComponentSettings, log.OpCreate, "Category added", log.NewFields().With(log.FieldCategory, name), err)
	return err
}

func (t *Tracker) DeleteCategory(ctx context.Context, name string) error {
	err := t.settings.DeleteCustomCategory(ctx, name)
	t.record(ctx, log.ComponentSettings, log.OpDelete, "Category deleted", log.NewFields().With(log.FieldCategory, name), err)
	return err
}
