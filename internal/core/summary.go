package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// TrendPoint is one bucket of the revenue/expense trend chart.
type TrendPoint struct {
	Key      string // sortable bucket key, e.g. 2024-03, 2024-Q1, 2024
	Label    string // short display label, e.g. Mar '24
	Revenue  Money
	Expenses Money
}

// Summary holds the totals shown on summary cards.
type Summary struct {
	Revenue  Money
	Expenses Money
	Net      Money
}

// LimitLevel grades spending against the monthly limit.
type LimitLevel string

const (
	LimitNone    LimitLevel = "none"
	LimitOK      LimitLevel = "ok"
	LimitWarning LimitLevel = "warning"
	LimitOver    LimitLevel = "over"
)

// LimitStatus describes how much of the monthly limit has been spent.
type LimitStatus struct {
	Limit   Money
	Spent   Money
	Percent float64 // unclamped, 0 when there is no limit
	Level   LimitLevel
}

// GoalStatus is derived from a goal's amounts and target date.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "In Progress"
	GoalAchieved   GoalStatus = "Achieved"
	GoalMissed     GoalStatus = "Missed"
)

// GoalView pairs a goal with its derived progress.
type GoalView struct {
	Goal     FinancialGoal
	Progress float64 // percent, unclamped
	Status   GoalStatus
}
