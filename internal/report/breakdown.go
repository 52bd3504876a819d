package report

import (
	"sort"

	"walletwatcher/internal/core"
)

// CategoryBreakdown sums expense amounts per category. Revenue is ignored and
// an empty category is reported as "Other". Entries come out in order of first
// appearance; use Ranked for a value ordered view.
func CategoryBreakdown(txs []core.Transaction) []core.CategoryAmount {
	index := make(map[string]int)
	var out []core.CategoryAmount
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		name := tx.Category
		if name == "" {
			name = core.OtherCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, core.CategoryAmount{Name: name})
		}
		out[i].Amount = out[i].Amount.Add(tx.Amount)
	}
	return out
}

// Ranked returns a copy sorted by amount descending, ties by name.
func Ranked(in []core.CategoryAmount) []core.CategoryAmount {
	out := append([]core.CategoryAmount(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}
