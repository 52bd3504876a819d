// Package report derives chart series, summaries, filtered lists and CSV
// exports from in-memory transaction lists.
//
// Every function is pure: results are recomputed from the input on each call
// and nothing is cached, so a mutated source collection never yields stale
// aggregates.
package report

import (
	"sort"

	"walletwatcher/internal/core"
)

// TrendWindow is the number of most recent buckets a trend series keeps.
const TrendWindow = 6

// Trend groups transactions by the bucket of their own date, sums revenue and
// expenses per bucket and returns the last TrendWindow buckets in
// chronological order. Buckets without activity are absent, never zero filled.
func Trend(view core.View, txs []core.Transaction) []core.TrendPoint {
	totals := make(map[string]*core.TrendPoint)
	for _, tx := range txs {
		key := core.BucketKey(view, tx.Date)
		p, ok := totals[key]
		if !ok {
			p = &core.TrendPoint{Key: key, Label: core.BucketLabel(view, key)}
			totals[key] = p
		}
		if tx.Type == core.Revenue {
			p.Revenue = p.Revenue.Add(tx.Amount)
		} else {
			p.Expenses = p.Expenses.Add(tx.Amount)
		}
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > TrendWindow {
		keys = keys[len(keys)-TrendWindow:]
	}

	out := make([]core.TrendPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, *totals[k])
	}
	return out
}
