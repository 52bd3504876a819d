// Command walletwatcher is a personal finance tracker for the terminal.
//
// Every invocation runs one subcommand against the configured store; the
// logged in user is remembered between invocations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"walletwatcher/internal/cli"
	"walletwatcher/internal/config"
	"walletwatcher/internal/log"
	"walletwatcher/internal/services"
)

const usage = `usage: walletwatcher <command> [flags]

Account:
  signup -u NAME -p PASSWORD      create an account and log in
  login -u NAME -p PASSWORD       log in
  logout                          log out
  whoami                          show the logged in user
  account update -p CURRENT [-new-username NAME] [-new-password PASSWORD]
  account delete -yes             delete the account and all its data

Records:
  tx add|edit|rm|ls               manage transactions
  goal add|edit|rm|ls             manage savings goals
  settings limit [AMOUNT]         show or set the monthly spending limit
  settings category add|rm|ls     manage custom expense categories

Views:
  dashboard                       summary, trend and breakdown of a period
  review                          financial review of a quarter or year
  report                          filtered and sorted transaction report
  export                          write the report as CSV
  ask QUESTION                    ask the assistant about a period

Run "walletwatcher <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := cli.SignalContext(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stdout, usage)
		return 0
	}

	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	logger := cli.SetupLogger(cfg.LogLevel, stderr)
	ctx = log.WithContext(ctx, logger)

	result, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize backend", log.FieldBackend, cfg.DataBackend, log.FieldError, err.Error())
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer func() {
		if err := result.Close(); err != nil {
			logger.ErrorContext(ctx, "Failed to close backend", log.FieldError, err.Error())
		}
	}()

	tracker := services.NewTracker(result.Store, logger)
	if err := tracker.Load(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	a := &app{tracker: tracker, cfg: cfg, logger: logger, out: stdout, view: newRenderer(cfg.CurrencySymbol)}
	if err := a.dispatch(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, usage)
			return 2
		}
		fmt.Fprintln(stderr, a.view.failure(err))
		return 1
	}
	return 0
}

// app holds what every command needs.
type app struct {
	tracker *services.Tracker
	cfg     *config.Config
	logger  *log.Logger
	out     io.Writer
	view    *renderer
}

var errUsage = errors.New("usage")

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "account":
		return a.sub(ctx, args, map[string]command{"update": a.accountUpdate, "delete": a.accountDelete})
	case "tx":
		return a.sub(ctx, args, map[string]command{"add": a.txAdd, "edit": a.txEdit, "rm": a.txRemove, "ls": a.txList})
	case "goal":
		return a.sub(ctx, args, map[string]command{"add": a.goalAdd, "edit": a.goalEdit, "rm": a.goalRemove, "ls": a.goalList})
	case "settings":
		return a.sub(ctx, args, map[string]command{"limit": a.settingsLimit, "category": a.settingsCategory})
	case "dashboard":
		return a.dashboard(ctx, args)
	case "review":
		return a.review(ctx, args)
	case "report":
		return a.report(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "ask":
		return a.ask(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

type command func(ctx context.Context, args []string) error

func (a *app) sub(ctx context.Context, args []string, cmds map[string]command) error {
	if len(args) == 0 {
		return errUsage
	}
	c, ok := cmds[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown subcommand %q", errUsage, args[0])
	}
	return c(ctx, args[1:])
}
