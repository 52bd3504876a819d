package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"walletwatcher/internal/core"
	"walletwatcher/internal/services"
)

const (
	colorRevenue = lipgloss.Color("#a6e3a1")
	colorExpense = lipgloss.Color("#f38ba8")
	colorWarning = lipgloss.Color("#f9e2af")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorMuted   = lipgloss.Color("#7f849c")

	barWidth = 24
)

// renderer formats view models for the terminal.
type renderer struct {
	symbol string

	titleStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	revenueStyle lipgloss.Style
	expenseStyle lipgloss.Style
	warnStyle    lipgloss.Style
	mutedStyle   lipgloss.Style
	cardStyle    lipgloss.Style
	aiStyle      lipgloss.Style
}

func newRenderer(symbol string) *renderer {
	return &renderer{
		symbol:       symbol,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		headerStyle:  lipgloss.NewStyle().Bold(true).Underline(true),
		revenueStyle: lipgloss.NewStyle().Foreground(colorRevenue),
		expenseStyle: lipgloss.NewStyle().Foreground(colorExpense),
		warnStyle:    lipgloss.NewStyle().Foreground(colorWarning),
		mutedStyle:   lipgloss.NewStyle().Foreground(colorMuted),
		cardStyle:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
		aiStyle:      lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
	}
}

func (r *renderer) title(s string) string   { return r.titleStyle.Render(s) }
func (r *renderer) success(s string) string { return r.revenueStyle.Render(s) }

func (r *renderer) failure(err error) string {
	return r.expenseStyle.Render("error: " + err.Error())
}

func (r *renderer) assistant(s string) string {
	return r.aiStyle.Render("assistant: ") + s
}

func (r *renderer) money(m core.Money) string {
	return m.Format(r.symbol)
}

// signed colours an amount by transaction type.
func (r *renderer) signed(t core.TransactionType, m core.Money) string {
	if t == core.Revenue {
		return r.revenueStyle.Render("+" + r.money(m))
	}
	return r.expenseStyle.Render("-" + r.money(m))
}

// pad right-pads s to width cells, ignoring ANSI sequences.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// table lays out rows under a header; cells are padded to the widest entry
// of their column.
func (r *renderer) table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for i, h := range header {
		b.WriteString(pad(r.headerStyle.Render(h), widths[i]+2))
	}
	for _, row := range rows {
		b.WriteString("\n")
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i]+2))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (r *renderer) transactions(txs []core.Transaction, withID bool) string {
	if len(txs) == 0 {
		return r.mutedStyle.Render("No transactions for this period.")
	}
	header := []string{"Date", "Description", "Category", "Amount"}
	if withID {
		header = append(header, "ID")
	}
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		row := []string{
			tx.Date.Format(dateLayout),
			truncate(tx.Description, 40),
			tx.Category,
			r.signed(tx.Type, tx.Amount),
		}
		if withID {
			row = append(row, r.mutedStyle.Render(tx.ID))
		}
		rows = append(rows, row)
	}
	return r.table(header, rows)
}

func (r *renderer) goals(goals []core.GoalView) string {
	if len(goals) == 0 {
		return r.mutedStyle.Render("No financial goals yet.")
	}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			g.Goal.Name,
			r.money(g.Goal.CurrentAmount) + " / " + r.money(g.Goal.TargetAmount),
			r.progressBar(g.Progress),
			r.goalStatus(g.Status),
			g.Goal.TargetDate.Format(dateLayout),
			r.mutedStyle.Render(g.Goal.ID),
		})
	}
	return r.table([]string{"Goal", "Saved", "Progress", "Status", "Target date", "ID"}, rows)
}

func (r *renderer) goalStatus(s core.GoalStatus) string {
	switch s {
	case core.GoalAchieved:
		return r.revenueStyle.Render(string(s))
	case core.GoalMissed:
		return r.expenseStyle.Render(string(s))
	default:
		return r.warnStyle.Render(string(s))
	}
}

// progressBar draws percent, clamped to a full bar, followed by the
// unclamped figure.
func (r *renderer) progressBar(percent float64) string {
	filled := int(min(max(percent, 0), 100) / 100 * 10)
	return strings.Repeat("■", filled) + r.mutedStyle.Render(strings.Repeat("□", 10-filled)) +
		fmt.Sprintf(" %.0f%%", percent)
}

func (r *renderer) categories(all, custom []string) string {
	lines := make([]string, 0, len(all))
	for _, c := range all {
		if slices.Contains(custom, c) {
			lines = append(lines, c+r.mutedStyle.Render(" (custom)"))
			continue
		}
		lines = append(lines, c)
	}
	return r.title("Expense categories") + "\n" + strings.Join(lines, "\n")
}

func (r *renderer) card(label, value string) string {
	return r.cardStyle.Render(r.mutedStyle.Render(label) + "\n" + value)
}

func (r *renderer) summaryCards(s core.Summary, limit *core.LimitStatus) string {
	expenses := r.expenseStyle.Render(r.money(s.Expenses))
	if limit != nil && limit.Level != core.LimitNone {
		expenses += "\n" + r.limitLine(*limit)
	}
	net := r.revenueStyle.Render(r.money(s.Net))
	if s.Net.Cents < 0 {
		net = r.expenseStyle.Render(r.money(s.Net))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		r.card("Total Revenue", r.revenueStyle.Render(r.money(s.Revenue))),
		r.card("Total Expenses", expenses),
		r.card("Net Savings", net),
	)
}

func (r *renderer) limitLine(l core.LimitStatus) string {
	text := fmt.Sprintf("%.0f%% of %s monthly limit", l.Percent, r.money(l.Limit))
	switch l.Level {
	case core.LimitOver:
		return r.expenseStyle.Render(text)
	case core.LimitWarning:
		return r.warnStyle.Render(text)
	default:
		return r.mutedStyle.Render(text)
	}
}

// bars renders a horizontal bar per category, scaled to the largest.
func (r *renderer) bars(items []core.CategoryAmount) string {
	if len(items) == 0 {
		return r.mutedStyle.Render("No expenses for this period.")
	}
	var top int64
	nameWidth := 0
	for _, it := range items {
		top = max(top, it.Amount.Cents)
		nameWidth = max(nameWidth, lipgloss.Width(it.Name))
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		n := 0
		if top > 0 {
			n = int(it.Amount.Cents * barWidth / top)
		}
		lines = append(lines, pad(it.Name, nameWidth+2)+
			r.expenseStyle.Render(strings.Repeat("█", max(n, 1)))+" "+r.money(it.Amount))
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) trend(points []core.TrendPoint) string {
	if len(points) == 0 {
		return r.mutedStyle.Render("No activity yet.")
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Label,
			r.revenueStyle.Render(r.money(p.Revenue)),
			r.expenseStyle.Render(r.money(p.Expenses)),
		})
	}
	return r.table([]string{"Period", "Revenue", "Expenses"}, rows)
}

func (r *renderer) dashboard(d services.Dashboard) string {
	sections := []string{
		r.title("Dashboard, " + d.Label),
		r.summaryCards(d.Summary, &d.Limit),
		r.headerStyle.Render("Spending trend"),
		r.trend(d.Trend),
		r.headerStyle.Render("Expense breakdown"),
		r.bars(d.Breakdown),
		r.headerStyle.Render("Transactions"),
		r.transactions(d.Displayed, false),
		r.headerStyle.Render("Financial goals"),
		r.goals(d.Goals),
	}
	return strings.Join(sections, "\n\n")
}

var reviewTitles = map[core.ReviewPeriod]string{
	core.ThisQuarter: "This Quarter",
	core.LastQuarter: "Last Quarter",
	core.ThisYear:    "This Year",
	core.LastYear:    "Last Year",
}

func (r *renderer) review(rv services.Review) string {
	span := rv.Range.Start.Format(dateLayout) + " to " + rv.Range.End.Format(dateLayout)
	goals := r.mutedStyle.Render("No goals with a target date in this period.")
	if len(rv.Goals) > 0 {
		goals = r.goals(rv.Goals)
	}
	sections := []string{
		r.title("Financial review, "+reviewTitles[rv.Period]) + r.mutedStyle.Render(" ("+span+")"),
		r.summaryCards(rv.Summary, nil),
		r.headerStyle.Render("Top expenses by category"),
		r.bars(rv.Breakdown),
		r.headerStyle.Render("Goals due in this period"),
		goals,
	}
	return strings.Join(sections, "\n\n")
}

func (r *renderer) report(rp services.Report) string {
	sections := []string{
		r.title(fmt.Sprintf("Report, %d transactions", len(rp.Transactions))),
		r.summaryCards(rp.Summary, nil),
		r.transactions(rp.Transactions, false),
	}
	return strings.Join(sections, "\n\n")
}
