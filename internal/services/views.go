package services

import (
	"context"
	"io"
	"time"

	"walletwatcher/internal/assistant"
	"walletwatcher/internal/core"
	"walletwatcher/internal/log"
	"walletwatcher/internal/report"
)

// Dashboard is everything the dashboard shows for one period.
type Dashboard struct {
	View      core.View
	Reference time.Time
	Label     string
	// Period holds the transactions of the selected period.
	Period    []core.Transaction
	Summary   core.Summary
	Limit     core.LimitStatus
	Trend     []core.TrendPoint
	Breakdown []core.CategoryAmount
	// Displayed is Period, or the filter's date range, after filtering and
	// sorting.
	Displayed []core.Transaction
	Goals     []core.GoalView
}

// Dashboard derives the dashboard for the period of view containing ref.
// The monthly limit is always checked against the expenses of ref's month.
func (t *Tracker) Dashboard(ctx context.Context, view core.View, ref time.Time, f report.Filter) (Dashboard, error) {
	all, err := t.transactions.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	goals, err := t.goals.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	limit, err := t.settings.MonthlyLimit(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	period := report.InPeriod(all, view, ref)
	month := report.Summarize(report.InPeriod(all, core.Monthly, ref))
	return Dashboard{
		View:      view,
		Reference: ref,
		Label:     core.PeriodLabel(view, ref),
		Period:    period,
		Summary:   report.Summarize(period),
		Limit:     report.CheckLimit(month.Expenses, limit),
		Trend:     report.Trend(view, all),
		Breakdown: report.Ranked(report.CategoryBreakdown(period)),
		Displayed: report.Select(all, period, f),
		Goals:     report.GoalViews(goals, ref),
	}, nil
}

// Review is the financial review of one relative period.
type Review struct {
	Period       core.ReviewPeriod
	Range        core.Range
	Transactions []core.Transaction
	Summary      core.Summary
	Breakdown    []core.CategoryAmount
	Goals        []core.GoalView
}

func (t *Tracker) Review(ctx context.Context, period core.ReviewPeriod, now time.Time) (Review, error) {
	r, err := core.RangeFor(period, now)
	if err != nil {
		return Review{}, err
	}
	all, err := t.transactions.List(ctx)
	if err != nil {
		return Review{}, err
	}
	goals, err := t.goals.List(ctx)
	if err != nil {
		return Review{}, err
	}

	txs := report.InRange(all, r)
	return Review{
		Period:       period,
		Range:        r,
		Transactions: txs,
		Summary:      report.Summarize(txs),
		Breakdown:    report.Ranked(report.CategoryBreakdown(txs)),
		Goals:        report.GoalsInRange(goals, r, now),
	}, nil
}

// Report is the output of the reports page.
type Report struct {
	Filter       report.Filter
	Transactions []core.Transaction
	Summary      core.Summary
	Breakdown    []core.CategoryAmount
}

func (t *Tracker) Report(ctx context.Context, f report.Filter) (Report, error) {
	all, err := t.transactions.List(ctx)
	if err != nil {
		return Report{}, err
	}
	txs := report.Generate(all, f)
	return Report{
		Filter:       f,
		Transactions: txs,
		Summary:      report.Summarize(txs),
		Breakdown:    report.Ranked(report.CategoryBreakdown(txs)),
	}, nil
}

// Export writes the CSV rendering of the report for f.
func (t *Tracker) Export(ctx context.Context, w io.Writer, f report.Filter) (int, error) {
	r, err := t.Report(ctx, f)
	if err != nil {
		return 0, err
	}
	err = report.WriteCSV(w, r.Transactions)
	t.record(ctx, log.ComponentReport, log.OpExport, "Report exported",
		log.NewFields().With(log.FieldCount, len(r.Transactions)), err)
	return len(r.Transactions), err
}

// Ask sends question about the transactions of the period of view containing
// ref to the assistant.
func (t *Tracker) Ask(ctx context.Context, conv *assistant.Conversation, gen assistant.Generator, view core.View, ref time.Time, question string) (string, error) {
	if _, err := t.requireUser(); err != nil {
		return "", err
	}
	all, err := t.transactions.List(ctx)
	if err != nil {
		return "", err
	}
	period := report.InPeriod(all, view, ref)
	answer, err := conv.Ask(ctx, gen, period, question)
	t.record(ctx, log.ComponentAssistant, log.OpAsk, "Question answered",
		log.NewFields().With(log.FieldView, string(view)).With(log.FieldCount, len(period)), err)
	return answer, err
}
