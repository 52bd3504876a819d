package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"walletwatcher/internal/core"
)

const (
	SortDate        SortKey = "date"
	SortAmount      SortKey = "amount"
	SortDescription SortKey = "description"
	SortCategory    SortKey = "category"
	SortType        SortKey = "type"
)

// SortKey names a transaction column to order by.
type SortKey string

// Comparator orders two transactions ascending; 0 means a tie.
type Comparator func(a, b core.Transaction) int

// comparators maps sort keys to their ascending comparator.
var comparators = map[SortKey]Comparator{
	SortDate: func(a, b core.Transaction) int {
		return a.Date.Compare(b.Date)
	},
	SortAmount: func(a, b core.Transaction) int {
		return cmp.Compare(a.Amount.Cents, b.Amount.Cents)
	},
	SortDescription: func(a, b core.Transaction) int {
		return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
	},
	SortCategory: func(a, b core.Transaction) int {
		return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	},
	SortType: func(a, b core.Transaction) int {
		return strings.Compare(strings.ToLower(string(a.Type)), strings.ToLower(string(b.Type)))
	},
}

// GetComparator returns the comparator for a sort key.
func GetComparator(key SortKey) (Comparator, error) {
	c, ok := comparators[key]
	if !ok {
		return nil, core.NewValidationError("sort", fmt.Sprintf("unknown sort key %q", key))
	}
	return c, nil
}

// ParseSortKey maps user input to a SortKey, defaulting to date.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortDate, nil
	}
	key := SortKey(strings.ToLower(s))
	if _, err := GetComparator(key); err != nil {
		return "", err
	}
	return key, nil
}

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort returns a sorted copy of txs. The sort is stable in both directions:
// ties keep their input order. Unknown keys fall back to date.
func Sort(txs []core.Transaction, key SortKey, order Order) []core.Transaction {
	c, err := GetComparator(key)
	if err != nil {
		c = comparators[SortDate]
	}
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		if order == Desc {
			return -c(a, b)
		}
		return c(a, b)
	})
	return out
}
