package report

import (
	"sort"
	"time"

	"walletwatcher/internal/core"
)

// Limit thresholds, in percent of the monthly limit.
const (
	warnPercent = 80
	overPercent = 100
)

// Summarize totals revenue and expenses of txs.
func Summarize(txs []core.Transaction) core.Summary {
	var s core.Summary
	for _, tx := range txs {
		switch tx.Type {
		case core.Revenue:
			s.Revenue = s.Revenue.Add(tx.Amount)
		case core.Expense:
			s.Expenses = s.Expenses.Add(tx.Amount)
		}
	}
	s.Net = s.Revenue.Sub(s.Expenses)
	return s
}

// CheckLimit grades spent against a monthly limit. A zero limit means no limit.
func CheckLimit(spent, limit core.Money) core.LimitStatus {
	st := core.LimitStatus{Limit: limit, Spent: spent, Level: core.LimitNone}
	if limit.Cents <= 0 {
		return st
	}
	st.Percent = float64(spent.Cents) / float64(limit.Cents) * 100
	switch {
	case st.Percent > overPercent:
		st.Level = core.LimitOver
	case st.Percent >= warnPercent:
		st.Level = core.LimitWarning
	default:
		st.Level = core.LimitOK
	}
	return st
}

// InRange keeps transactions dated within r.
func InRange(txs []core.Transaction, r core.Range) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// InPeriod keeps transactions sharing ref's bucket for the given view.
func InPeriod(txs []core.Transaction, view core.View, ref time.Time) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if core.InPeriod(view, tx.Date, ref) {
			out = append(out, tx)
		}
	}
	return out
}

// GoalsInRange returns the goals whose target date lies within r, ordered by
// target date, with progress and status derived at now.
func GoalsInRange(goals []core.FinancialGoal, r core.Range, now time.Time) []core.GoalView {
	var out []core.GoalView
	for _, g := range goals {
		if r.Contains(g.TargetDate) {
			out = append(out, g.View(now))
		}
	}
	sortGoalViews(out)
	return out
}

// GoalViews derives the display model of every goal, ordered by target date.
func GoalViews(goals []core.FinancialGoal, now time.Time) []core.GoalView {
	out := make([]core.GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.View(now))
	}
	sortGoalViews(out)
	return out
}

func sortGoalViews(views []core.GoalView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Goal.TargetDate.Before(views[j].Goal.TargetDate)
	})
}
