package records

import (
	"context"

	"walletwatcher/internal/auth"
	"walletwatcher/internal/core"
	"walletwatcher/internal/storage"
)

// Transactions is the record store of revenue and expense entries.
type Transactions struct {
	*Collection[core.Transaction]
}

func NewTransactions(store storage.Store, session *auth.Session) *Transactions {
	return &Transactions{newCollection(store, session, storage.TransactionsKey, accessors[core.Transaction]{
		id:    func(t *core.Transaction) *string { return &t.ID },
		owner: func(t *core.Transaction) *string { return &t.UserID },
	})}
}

// Add validates tx and stores it. Revenue entries always get the Revenue
// category.
func (s *Transactions) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return s.Collection.Add(ctx, tx)
}

func (s *Transactions) Update(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return s.Collection.Update(ctx, tx)
}
