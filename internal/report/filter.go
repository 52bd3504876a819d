package report

import (
	"time"

	"walletwatcher/internal/core"
)

// Filter holds the list/report criteria. Zero values mean "not set".
type Filter struct {
	Start    time.Time
	End      time.Time
	Type     core.TransactionType // empty for all types
	Category string               // only honoured when Type is Expense
	SortBy   SortKey
	Order    Order
}

// HasRange reports whether both ends of an explicit date range are set.
func (f Filter) HasRange() bool {
	return !f.Start.IsZero() && !f.End.IsZero()
}

func (f Filter) match(tx core.Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Type == core.Expense && f.Category != "" && tx.Category != f.Category {
		return false
	}
	return true
}

func (f Filter) sorted(txs []core.Transaction) []core.Transaction {
	key := f.SortBy
	if key == "" {
		key = SortDate
	}
	order := f.Order
	if order == "" {
		order = Desc
	}
	return Sort(txs, key, order)
}

// Select is the list pipeline. When the filter carries both range ends the
// range is applied to all and replaces base; otherwise base is used as given.
// Type and category filters follow, then the sort.
func Select(all, base []core.Transaction, f Filter) []core.Transaction {
	if f.HasRange() {
		base = InRange(all, core.DayRange(f.Start, f.End))
	}
	var out []core.Transaction
	for _, tx := range base {
		if f.match(tx) {
			out = append(out, tx)
		}
	}
	return f.sorted(out)
}

// Generate is the report pipeline over all transactions. Either range end may
// be set on its own; the end is inclusive through the end of that day.
func Generate(all []core.Transaction, f Filter) []core.Transaction {
	var out []core.Transaction
	for _, tx := range all {
		if !f.Start.IsZero() && tx.Date.Before(core.DayRange(f.Start, f.Start).Start) {
			continue
		}
		if !f.End.IsZero() && tx.Date.After(core.DayRange(f.End, f.End).End) {
			continue
		}
		if f.match(tx) {
			out = append(out, tx)
		}
	}
	return f.sorted(out)
}
