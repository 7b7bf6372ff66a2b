package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/folha-ponto/ponto-client/config"
	"github.com/folha-ponto/ponto-client/internal/bootstrap"
	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"github.com/folha-ponto/ponto-client/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultCommandTimeout = 30 * time.Second

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	bootstrap.ApplyLogLevel(cfg)

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate against the timesheet service and persist the session token",
			run:         runLogin,
		},
		"whoami": {
			name:        "whoami",
			description: "Restore the persisted session and show the resolved identity",
			run:         runWhoAmI,
		},
		"logout": {
			name:        "logout",
			description: "End the session and erase the persisted token",
			run:         runLogout,
		},
		"check": {
			name:        "check",
			description: "Evaluate the navigation guard against a target path",
			run:         runCheck,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: ponto-client <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-10s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

type loginOptions struct {
	User string
	Pass string
}

func parseLoginFlags(args []string) (loginOptions, error) {
	var opts loginOptions
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.StringVar(&opts.User, "user", "", "account username")
	fs.StringVar(&opts.Pass, "pass", "", "account password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parse login flags: %w", err)
	}
	if opts.User == "" {
		return opts, fmt.Errorf("login requires -user")
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	if opts.Pass == "" {
		pass, readErr := readPassword(os.Stdin)
		if readErr != nil {
			return readErr
		}
		opts.Pass = pass
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	layer, err := bootstrap.BuildSessionLayer(bootstrap.SessionDeps{
		Config: cmdCtx.Config,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	token, err := layer.Client.Login(ctx, opts.User, opts.Pass)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	layer.Sessions.Login(ctx, token)

	snap := layer.Sessions.Snapshot()
	if !snap.Authenticated() {
		return fmt.Errorf("login succeeded but identity resolution failed")
	}
	return printSnapshot(snap)
}

func runWhoAmI(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	layer, err := bootstrap.BuildSessionLayer(bootstrap.SessionDeps{
		Config: cmdCtx.Config,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	layer.Sessions.Restore(ctx)
	snap := layer.Sessions.Snapshot()
	if snap.Token == "" {
		return fmt.Errorf("no persisted session, run login first")
	}
	return printSnapshot(snap)
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	layer, err := bootstrap.BuildSessionLayer(bootstrap.SessionDeps{
		Config: cmdCtx.Config,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	layer.Sessions.Restore(ctx)
	layer.Sessions.Logout(ctx)
	return writef(os.Stdout, "Session ended\n")
}

type checkOptions struct {
	Path string
}

func parseCheckFlags(args []string) (checkOptions, error) {
	var opts checkOptions
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.StringVar(&opts.Path, "path", "", "navigation target to evaluate")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parse check flags: %w", err)
	}
	if opts.Path == "" {
		return opts, fmt.Errorf("check requires -path")
	}
	return opts, nil
}

func runCheck(cmdCtx *commandContext, args []string) error {
	opts, err := parseCheckFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	deps := bootstrap.SessionDeps{Config: cmdCtx.Config, Logger: cmdCtx.Logger}
	layer, err := bootstrap.BuildSessionLayer(deps)
	if err != nil {
		return err
	}

	layer.Sessions.Restore(ctx)
	guard := bootstrap.BuildGuard(layer.Sessions, deps)

	decision := guard.Evaluate(ctx, opts.Path)
	return printDecision(opts.Path, decision)
}

func printSnapshot(snap domainauth.Snapshot) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if err := writef(w, "Name\t%s\n", snap.Profile.Name); err != nil {
		return err
	}
	if err := writef(w, "Code\t%s\n", snap.SubjectCode); err != nil {
		return err
	}
	if err := writef(w, "Role\t%s\n", snap.Role); err != nil {
		return err
	}
	if err := writef(w, "Email\t%s\n", snap.Profile.Email); err != nil {
		return err
	}
	if err := writef(w, "Title\t%s\n", snap.Profile.Title); err != nil {
		return err
	}
	return w.Flush()
}

func printDecision(target string, d service.Decision) error {
	switch d.Action {
	case service.ActionRedirect:
		return writef(os.Stdout, "%s: %s -> %s (%s)\n", target, d.Action, d.Target, d.Reason)
	default:
		return writef(os.Stdout, "%s: %s (%s)\n", target, d.Action, d.Reason)
	}
}

func readPassword(r io.Reader) (string, error) {
	if err := writef(os.Stderr, "Password: "); err != nil {
		return "", err
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	pass := strings.TrimRight(line, "\r\n")
	if pass == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return pass, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
