package records

import (
	"context"
	"strings"

	"walletwatcher/internal/auth"
	"walletwatcher/internal/core"
	"walletwatcher/internal/storage"
)

// Goals is the record store of savings goals.
type Goals struct {
	*Collection[core.FinancialGoal]
}

func NewGoals(store storage.Store, session *auth.Session) *Goals {
	return &Goals{newCollection(store, session, storage.GoalsKey, accessors[core.FinancialGoal]{
		id:    func(g *core.FinancialGoal) *string { return &g.ID },
		owner: func(g *core.FinancialGoal) *string { return &g.UserID },
	})}
}

func (s *Goals) Add(ctx context.Context, g core.FinancialGoal) (core.FinancialGoal, error) {
	g.Name = strings.TrimSpace(g.Name)
	if err := g.Validate(); err != nil {
		return core.FinancialGoal{}, err
	}
	return s.Collection.Add(ctx, g)
}

func (s *Goals) Update(ctx context.Context, g core.FinancialGoal) (core.FinancialGoal, error) {
	g.Name = strings.TrimSpace(g.Name)
	if err := g.Validate(); err != nil {
		return core.FinancialGoal{}, err
	}
	return s.Collection.Update(ctx, g)
}
