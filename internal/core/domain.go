package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	Revenue TransactionType = "REVENUE"
	Expense TransactionType = "EXPENSE"
)

// RevenueCategory is the category label every revenue transaction carries.
const RevenueCategory = "Revenue"

// OtherCategory is used when an expense has no category.
const OtherCategory = "Other"

// DefaultExpenseCategories are offered to every user before custom ones.
var DefaultExpenseCategories = []string{
	"Food",
	"Housing",
	"Transportation",
	"Utilities",
	"Health",
	"Entertainment",
	"Shopping",
	"Education",
	"Other",
}

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string          `json:"id"`
		UserID      string          `json:"userId"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        time.Time       `json:"date"`
	}

	FinancialGoal struct {
		ID            string    `json:"id"`
		UserID        string    `json:"userId"`
		Name          string    `json:"name"`
		TargetAmount  Money     `json:"targetAmount"`
		CurrentAmount Money     `json:"currentAmount"`
		TargetDate    time.Time `json:"targetDate"`
	}

	Settings struct {
		MonthlyLimit     Money
		CustomCategories []string
	}

	User struct {
		Username string `json:"username"`
	}

	Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrMissingPassword    = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrIncorrectPassword  = errors.New("incorrect current password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrNotFound           = errors.New("record not found")
	ErrNoSession          = errors.New("no user logged in")
	ErrValidation         = errors.New("validation error")

	ErrInvalidAmount    = NewValidationError("amount", "must be a positive number")
	ErrEmptyDescription = NewValidationError("description", "cannot be empty")
)

// ValidationError reports a rejected form field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets callers match any validation failure with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	t, ok := target.(*ValidationError)
	return ok && t.Field == e.Field && t.Reason == e.Reason
}

// IsValid returns true if the transaction type is known
func (t TransactionType) IsValid() bool {
	switch t {
	case Revenue, Expense:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Normalize forces the fixed revenue label on revenue transactions.
func (t *Transaction) Normalize() {
	if t.Type == Revenue {
		t.Category = RevenueCategory
	}
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
}

func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return NewValidationError("type", fmt.Sprintf("unknown transaction type %q", t.Type))
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return NewValidationError("description", "too long (max 200 characters)")
	}
	if t.Date.IsZero() {
		return NewValidationError("date", "cannot be zero")
	}
	return nil
}

func (g FinancialGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if g.TargetAmount.Cents < 0 {
		return NewValidationError("targetAmount", "cannot be negative")
	}
	if g.CurrentAmount.Cents < 0 {
		return NewValidationError("currentAmount", "cannot be negative")
	}
	if g.TargetDate.IsZero() {
		return NewValidationError("targetDate", "cannot be zero")
	}
	return nil
}

// MergeCategories returns the sorted union of the built-in and custom categories.
func MergeCategories(custom []string) []string {
	seen := make(map[string]struct{}, len(DefaultExpenseCategories)+len(custom))
	out := make([]string, 0, len(DefaultExpenseCategories)+len(custom))
	for _, list := range [][]string{DefaultExpenseCategories, custom} {
		for _, c := range list {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
