package core

import "time"

// Progress returns current/target as a percentage. A zero target reports 0
// rather than dividing by zero. The value is not clamped at 100.
func (g FinancialGoal) Progress() float64 {
	if g.TargetAmount.Cents <= 0 {
		return 0
	}
	return float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100
}

// Status grades the goal at instant now.
func (g FinancialGoal) Status(now time.Time) GoalStatus {
	switch {
	case g.CurrentAmount.Cents >= g.TargetAmount.Cents:
		return GoalAchieved
	case g.TargetDate.Before(now):
		return GoalMissed
	default:
		return GoalInProgress
	}
}

// View derives the display model of the goal at instant now.
func (g FinancialGoal) View(now time.Time) GoalView {
	return GoalView{Goal: g, Progress: g.Progress(), Status: g.Status(now)}
}
