package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"walletwatcher/internal/assistant"
	"walletwatcher/internal/core"
	"walletwatcher/internal/report"
)

func (a *app) credentials(name string, args []string) (string, string, error) {
	fs := a.flags(name)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	return *username, *password, nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	username, password, err := a.credentials("signup", args)
	if err != nil {
		return err
	}
	u, err := a.tracker.Signup(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success("Welcome, "+u.Username+"! You are logged in."))
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	username, password, err := a.credentials("login", args)
	if err != nil {
		return err
	}
	u, err := a.tracker.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success("Logged in as "+u.Username+"."))
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.tracker.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) whoami() error {
	u, ok := a.tracker.CurrentUser()
	if !ok {
		return core.ErrNoSession
	}
	fmt.Fprintln(a.out, u.Username)
	return nil
}

func (a *app) accountUpdate(ctx context.Context, args []string) error {
	fs := a.flags("account update")
	current := fs.String("p", "", "current password")
	newUsername := fs.String("new-username", "", "new username (blank keeps the current one)")
	newPassword := fs.String("new-password", "", "new password (blank keeps the current one)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.tracker.UpdateCredentials(ctx, *current, *newUsername, *newPassword)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success("Account updated. Logged in as "+u.Username+"."))
	return nil
}

func (a *app) accountDelete(ctx context.Context, args []string) error {
	fs := a.flags("account delete")
	yes := fs.Bool("yes", false, "confirm deleting the account and all of its data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return core.NewValidationError("yes", "pass -yes to confirm; this removes every transaction, goal and setting")
	}
	if err := a.tracker.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}

// txFields are the editable transaction fields.
type txFields struct {
	typ      string
	amount   string
	desc     string
	category string
	date     string
}

func (f *txFields) register(fs *flag.FlagSet) {
	fs.StringVar(&f.typ, "type", "expense", "expense or revenue")
	fs.StringVar(&f.amount, "amount", "", "positive amount, e.g. 12.50")
	fs.StringVar(&f.desc, "desc", "", "description")
	fs.StringVar(&f.category, "category", core.OtherCategory, "expense category")
	fs.StringVar(&f.date, "date", "", "date, YYYY-MM-DD (default today)")
}

// apply copies the flags in set onto tx.
func (f *txFields) apply(tx *core.Transaction, set map[string]bool) error {
	var err error
	if set["type"] {
		if tx.Type, err = parseType(f.typ); err != nil {
			return err
		}
	}
	if set["amount"] {
		if tx.Amount, err = parseAmount("amount", f.amount, false); err != nil {
			return err
		}
	}
	if set["desc"] {
		tx.Description = f.desc
	}
	if set["category"] {
		tx.Category = f.category
	}
	if set["date"] {
		if tx.Date, err = parseDate(f.date); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) txAdd(ctx context.Context, args []string) error {
	fs := a.flags("tx add")
	var f txFields
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tx := core.Transaction{}
	all := map[string]bool{"type": true, "amount": true, "desc": true, "category": true, "date": true}
	if err := f.apply(&tx, all); err != nil {
		return err
	}
	added, err := a.tracker.AddTransaction(ctx, tx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success("Saved transaction "+added.ID+"."))
	return nil
}

func (a *app) txEdit(ctx context.Context, args []string) error {
	id, rest, err := takeID(args)
	if err != nil {
		return err
	}
	fs := a.flags("tx edit")
	var f txFields
	f.register(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}

	tx, err := a.tracker.Transaction(ctx, id)
	if err != nil {
		return err
	}
	if err := f.apply(&tx, setFlags(fs)); err != nil {
		return err
	}
	if _, err := a.tracker.UpdateTransaction(ctx, tx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success("Updated transaction "+id+"."))
	return nil
}

func (a *app) txRemove(ctx context.Context, args []string) error {
	id, _, err := takeID(args)
	if err != nil {
		return err
	}
	if err := a.tracker.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted transaction "+id+".")
	return nil
}

func (a *app) txList(ctx context.Context, args []string) error {
	fs := a.flags("tx ls")
	var p periodFlags
	var f filterFlags
	p.register(fs)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	view, ref, err := p.parse()
	if err != nil {
		return err
	}
	filter, err := f.parse()
	if err != nil {
		return err
	}

	d, err := a.tracker.Dashboard(ctx, view, ref, filter)
	if err != nil {
		return err
	}
	title := d.Label
	if filter.HasRange() {
		title = filter.Start.Format(dateLayout) + " to " + filter.End.Format(dateLayout)
	}
	fmt.Fprintln(a.out, a.view.title("Transactions, "+title))
	fmt.Fprintln(a.out, a.view.transactions(d.Displayed, true))
	return nil
}

type goalFields struct {
	name    string
	target  string
	current string
	date    string
}

func (f *goalFields) register(fs *flag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "goal name")
	fs.StringVar(&f.target, "target", "0", "target amount")
	fs.StringVar(&f.current, "current", "0", "amount saved so far")
	fs.StringVar(&f.date, "date", "", "target date, YYYY-MM-DD (default today)")
}

func (f *goalFields) apply(g *core.FinancialGoal, set map[string]bool) error {
	var err error
	if set["name"] {
		g.Name = f.name
	}
	if set["target"] {
		if g.TargetAmount, err = parseAmount("target", f.target, true); err != nil {
			return err
		}
	}
	if set["current"] {
		if g.CurrentAmount, err = parseAmount("current", f.current, true); err != nil {
			return err
		}
	}
	if set["date"] {
		if g.TargetDate, err = parseDate(f.date); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) goalAdd(ctx context.Context, args []string) error {
	fs := a.flags("goal add")
	var f goalFields
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	var g core.FinancialGoal
	if err := f.apply(&g, map[string]bool{"name": true, "target": true, "current": true, "date": true}); err != nil {
		return err
	}
	added, err := a.tracker.AddGoal(ctx, g)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success("Saved goal "+added.ID+"."))
	return nil
}

func (a *app) goalEdit(ctx context.Context, args []string) error {
	id, rest, err := takeID(args)
	if err != nil {
		return err
	}
	fs := a.flags("goal edit")
	var f goalFields
	f.register(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	g, err := a.tracker.Goal(ctx, id)
	if err != nil {
		return err
	}
	if err := f.apply(&g, setFlags(fs)); err != nil {
		return err
	}
	if _, err := a.tracker.UpdateGoal(ctx, g); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success("Updated goal "+id+"."))
	return nil
}

func (a *app) goalRemove(ctx context.Context, args []string) error {
	id, _, err := takeID(args)
	if err != nil {
		return err
	}
	if err := a.tracker.DeleteGoal(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted goal "+id+".")
	return nil
}

func (a *app) goalList(ctx context.Context, _ []string) error {
	goals, err := a.tracker.Goals(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.title("Financial goals"))
	fmt.Fprintln(a.out, a.view.goals(report.GoalViews(goals, time.Now())))
	return nil
}

func (a *app) settingsLimit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		limit, err := a.tracker.Settings(ctx)
		if err != nil {
			return err
		}
		if limit.MonthlyLimit.Cents == 0 {
			fmt.Fprintln(a.out, "No monthly limit set.")
			return nil
		}
		fmt.Fprintln(a.out, "Monthly limit: "+a.view.money(limit.MonthlyLimit))
		return nil
	}
	if _, ok := a.tracker.CurrentUser(); !ok {
		return core.ErrNoSession
	}
	limit, err := parseAmount("monthlyLimit", args[0], true)
	if err != nil {
		return err
	}
	if err := a.tracker.SetMonthlyLimit(ctx, limit); err != nil {
		return err
	}
	if limit.Cents == 0 {
		fmt.Fprintln(a.out, a.view.success("Monthly limit removed."))
		return nil
	}
	fmt.Fprintln(a.out, a.view.success("Monthly limit set to "+a.view.money(limit)+"."))
	return nil
}

func (a *app) settingsCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "ls":
		cats, err := a.tracker.Categories(ctx)
		if err != nil {
			return err
		}
		settings, err := a.tracker.Settings(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, a.view.categories(cats, settings.CustomCategories))
		return nil
	case "add", "rm":
		if len(args) < 2 {
			return errUsage
		}
		name := strings.Join(args[1:], " ")
		if args[0] == "add" {
			if err := a.tracker.AddCategory(ctx, name); err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.view.success("Added category "+name+"."))
			return nil
		}
		if err := a.tracker.DeleteCategory(ctx, name); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Deleted category "+name+".")
		return nil
	default:
		return errUsage
	}
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	fs := a.flags("dashboard")
	var p periodFlags
	var f filterFlags
	p.register(fs)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	view, ref, err := p.parse()
	if err != nil {
		return err
	}
	filter, err := f.parse()
	if err != nil {
		return err
	}

	d, err := a.tracker.Dashboard(ctx, view, ref, filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.dashboard(d))
	return nil
}

func (a *app) review(ctx context.Context, args []string) error {
	fs := a.flags("review")
	period := fs.String("period", string(core.ThisQuarter), "this-quarter, last-quarter, this-year or last-year")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := a.tracker.Review(ctx, core.ReviewPeriod(*period), time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.review(r))
	return nil
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := a.flags("report")
	var f filterFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := f.parse()
	if err != nil {
		return err
	}
	r, err := a.tracker.Report(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.report(r))
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := a.flags("export")
	out := fs.String("out", report.ExportFilename, `output file, "-" for standard output`)
	var f filterFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := f.parse()
	if err != nil {
		return err
	}

	if *out == "-" {
		_, err := a.tracker.Export(ctx, a.out, filter)
		return err
	}

	file, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	w := bufio.NewWriter(file)
	n, err := a.tracker.Export(ctx, w, filter)
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.view.success(fmt.Sprintf("Exported %d transactions to %s.", n, *out)))
	return nil
}

func (a *app) ask(ctx context.Context, args []string) error {
	fs := a.flags("ask")
	var p periodFlags
	p.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	view, ref, err := p.parse()
	if err != nil {
		return err
	}

	gen := assistant.NewOpenAIGenerator(assistant.OpenAIConfig{
		BaseURL: a.cfg.AssistantBaseURL,
		APIKey:  a.cfg.AssistantAPIKey,
		Model:   a.cfg.AssistantModel,
		Timeout: a.cfg.AssistantTimeout,
	}, a.logger)
	question := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(question) == "" {
		return core.NewValidationError("question", "cannot be empty")
	}
	if _, ok := a.tracker.CurrentUser(); !ok {
		return core.ErrNoSession
	}
	return a.askWith(ctx, gen, view, ref, question)
}

// askWith streams the answer to stdout as it arrives.
func (a *app) askWith(ctx context.Context, gen assistant.Generator, view core.View, ref time.Time, question string) error {
	fmt.Fprintln(a.out, a.view.assistant(assistant.Greeting))
	streaming := streamingGenerator{next: gen, out: a.out}
	if _, err := a.tracker.Ask(ctx, assistant.NewConversation(), streaming, view, ref, question); err != nil {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, a.view.assistant(assistant.FailureReply))
		return err
	}
	fmt.Fprintln(a.out)
	return nil
}

// streamingGenerator echoes every chunk to out before handing it on.
type streamingGenerator struct {
	next assistant.Generator
	out  io.Writer
}

func (s streamingGenerator) Stream(ctx context.Context, prompt string, onChunk func(string)) error {
	return s.next.Stream(ctx, prompt, func(chunk string) {
		fmt.Fprint(s.out, chunk)
		onChunk(chunk)
	})
}

// takeID splits a leading record id from the remaining flags.
func takeID(args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, core.NewValidationError("id", "a record id is required")
	}
	return args[0], args[1:], nil
}
