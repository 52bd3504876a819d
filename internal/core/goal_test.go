package core

import (
	"testing"
	"time"
)

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		target  int64
		current int64
		want    float64
	}{
		{"zero target reports zero", 0, 5000, 0},
		{"half way", 10000, 5000, 50},
		{"exceeds target", 10000, 15000, 150},
		{"nothing saved", 10000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FinancialGoal{TargetAmount: Money{Cents: tt.target}, CurrentAmount: Money{Cents: tt.current}}
			if got := g.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoalStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	tests := []struct {
		name string
		goal FinancialGoal
		want GoalStatus
	}{
		{"achieved beats past due", FinancialGoal{TargetAmount: Money{100}, CurrentAmount: Money{100}, TargetDate: past}, GoalAchieved},
		{"missed", FinancialGoal{TargetAmount: Money{100}, CurrentAmount: Money{50}, TargetDate: past}, GoalMissed},
		{"in progress", FinancialGoal{TargetAmount: Money{100}, CurrentAmount: Money{50}, TargetDate: future}, GoalInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.Status(now); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}
