package core

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:        Expense,
		Amount:      Money{Cents: 100},
		Description: "ok",
		Category:    "Food",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "GIFT", Amount: Money{Cents: 1}, Description: "a", Date: good.Date},
		{Type: Expense, Amount: Money{Cents: 0}, Description: "a", Date: good.Date},
		{Type: Expense, Amount: Money{Cents: 1}, Description: " ", Date: good.Date},
		{Type: Expense, Amount: Money{Cents: 1}, Description: "a"},
	}
	for i, tx := range bads {
		err := tx.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d expected validation error, got %v", i, err)
		}
	}
}

func TestTransactionNormalizeForcesRevenueCategory(t *testing.T) {
	tx := Transaction{Type: Revenue, Category: "Food", Description: "  salary "}
	tx.Normalize()
	if tx.Category != RevenueCategory {
		t.Fatalf("expected %q, got %q", RevenueCategory, tx.Category)
	}
	if tx.Description != "salary" {
		t.Fatalf("expected trimmed description, got %q", tx.Description)
	}

	exp := Transaction{Type: Expense, Category: "Food"}
	exp.Normalize()
	if exp.Category != "Food" {
		t.Fatalf("expense category changed to %q", exp.Category)
	}
}

func TestGoalValidate(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := (FinancialGoal{Name: "Trip", TargetDate: date}).Validate(); err != nil {
		t.Fatalf("zero amounts should be allowed: %v", err)
	}
	bads := []FinancialGoal{
		{Name: "", TargetDate: date},
		{Name: "x", TargetAmount: Money{Cents: -1}, TargetDate: date},
		{Name: "x", CurrentAmount: Money{Cents: -1}, TargetDate: date},
		{Name: "x"},
	}
	for i, g := range bads {
		if err := g.Validate(); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d expected validation error, got %v", i, err)
		}
	}
}

func TestValidationErrorMatching(t *testing.T) {
	err := NewValidationError("amount", "must be a positive number")
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("equal validation errors should match")
	}
	if errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("different validation errors should not match")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "amount" {
		t.Fatalf("errors.As failed: %v", ve)
	}
}

func TestMergeCategories(t *testing.T) {
	got := MergeCategories([]string{"Pets", "Food", "food"})
	if got[0] != "Education" {
		t.Fatalf("expected sorted output, got %v", got)
	}
	count := map[string]int{}
	for _, c := range got {
		count[c]++
	}
	if count["Food"] != 1 || count["food"] != 1 || count["Pets"] != 1 {
		t.Fatalf("unexpected merge result %v", got)
	}
	if !reflect.DeepEqual(MergeCategories(nil), MergeCategories([]string{})) {
		t.Fatalf("nil and empty custom lists should merge the same")
	}
}
