package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"walletwatcher/internal/core"
	"walletwatcher/internal/report"
)

const dateLayout = "2006-01-02"

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// parseDate reads YYYY-MM-DD in local time; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, core.NewValidationError("date", fmt.Sprintf("%q is not YYYY-MM-DD", s))
	}
	return t, nil
}

func parseType(s string) (core.TransactionType, error) {
	t := core.TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", core.NewValidationError("type", fmt.Sprintf("%q is not expense or revenue", s))
	}
	return t, nil
}

// periodFlags select the period a view is computed for.
type periodFlags struct {
	view string
	date string
}

func (p *periodFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&p.view, "view", "monthly", "period granularity: monthly, quarterly or yearly")
	fs.StringVar(&p.date, "date", "", "any day inside the period, YYYY-MM-DD (default today)")
}

func (p *periodFlags) parse() (core.View, time.Time, error) {
	view, err := core.ParseView(p.view)
	if err != nil {
		return "", time.Time{}, err
	}
	ref, err := parseDate(p.date)
	if err != nil {
		return "", time.Time{}, err
	}
	return view, ref, nil
}

// filterFlags mirror the list and report filter controls.
type filterFlags struct {
	from     string
	to       string
	typ      string
	category string
	sortBy   string
	order    string
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "first day of the date range, YYYY-MM-DD")
	fs.StringVar(&f.to, "to", "", "last day of the date range, YYYY-MM-DD")
	fs.StringVar(&f.typ, "type", "", "only expense or revenue transactions")
	fs.StringVar(&f.category, "category", "", "only this category (with -type expense)")
	fs.StringVar(&f.sortBy, "sort", "date", "sort by date, amount, description, category or type")
	fs.StringVar(&f.order, "order", "desc", "sort order: asc or desc")
}

func (f *filterFlags) parse() (report.Filter, error) {
	var out report.Filter
	var err error
	if f.from != "" {
		if out.Start, err = parseDate(f.from); err != nil {
			return report.Filter{}, err
		}
	}
	if f.to != "" {
		if out.End, err = parseDate(f.to); err != nil {
			return report.Filter{}, err
		}
	}
	if f.typ != "" && !strings.EqualFold(f.typ, "all") {
		if out.Type, err = parseType(f.typ); err != nil {
			return report.Filter{}, err
		}
	}
	out.Category = f.category
	if out.SortBy, err = report.ParseSortKey(f.sortBy); err != nil {
		return report.Filter{}, err
	}
	switch report.Order(strings.ToLower(f.order)) {
	case report.Asc:
		out.Order = report.Asc
	case report.Desc:
		out.Order = report.Desc
	default:
		return report.Filter{}, core.NewValidationError("order", fmt.Sprintf("%q is not asc or desc", f.order))
	}
	return out, nil
}

func parseAmount(field, s string, allowZero bool) (core.Money, error) {
	var (
		cents int64
		err   error
	)
	if allowZero {
		cents, err = core.ParseNonNegativeCents(s)
	} else {
		cents, err = core.ParseDecimalToCents(s)
	}
	if err != nil {
		return core.Money{}, core.NewValidationError(field, fmt.Sprintf("%q is not a valid amount", s))
	}
	return core.Money{Cents: cents}, nil
}
