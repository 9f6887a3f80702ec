package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/fragmede/bridgetui/internal/actions"
	"github.com/fragmede/bridgetui/internal/api"
	"github.com/fragmede/bridgetui/internal/config"
	"github.com/fragmede/bridgetui/internal/history"
	"github.com/fragmede/bridgetui/internal/logutil"
	"github.com/fragmede/bridgetui/internal/ui"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "Config file (yaml, toml or json)"},
		&cli.StringFlag{Name: "base-url", Usage: "Bridge server base URL"},
		&cli.StringFlag{Name: "username", Usage: "Username for sign in"},
		&cli.StringFlag{Name: "password", Usage: "Password for sign in"},
		&cli.StringFlag{Name: "email", Usage: "Email for password reset"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	}
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("username") {
		cfg.Username = c.String("username")
	}
	if c.IsSet("password") {
		cfg.Password = c.String("password")
	}
	if c.IsSet("email") {
		cfg.Email = c.String("email")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func params(cfg config.Config) actions.Params {
	return actions.Params{
		Username: cfg.Username,
		Password: cfg.Password,
		Email:    cfg.Email,
	}
}

func tuiAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, closer, err := logutil.OpenFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()
	ctx := logutil.WithLogger(c.Context, logger)

	db, err := history.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer db.Close()

	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout)
	app := ui.NewApp(ctx, cfg, client, db, logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Perform actions and print each result",
		ArgsUsage: "<action>... (signIn, signOut, resetPassword, getUserProfile, bootstrap)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sequential", Aliases: []string{"s"}, Usage: "Run one action at a time, in order"},
			&cli.BoolFlag{Name: "record", Usage: "Append results to the activity log"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.NArg() == 0 {
				return cli.Exit("no actions given", 2)
			}
			acts := make([]actions.Action, 0, c.NArg())
			for _, name := range c.Args().Slice() {
				a, err := actions.Parse(name)
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				acts = append(acts, a)
			}

			logger := logutil.Console(cfg.LogLevel)
			ctx := logutil.WithLogger(c.Context, logger)
			client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout)

			var b actions.Batch
			if c.Bool("sequential") {
				b = actions.RunSequential(ctx, client, params(cfg), acts...)
			} else {
				b = actions.RunAll(ctx, client, params(cfg), acts...)
			}

			if c.Bool("record") {
				if err := recordBatch(cfg, b); err != nil {
					logger.Warn().Err(err).Msg("Unable to record results")
				}
			}

			failed := printBatch(c.App.Writer, b)
			if failed > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func recordBatch(cfg config.Config, b actions.Batch) error {
	db, err := history.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	for _, r := range b.Results {
		if err := db.Record(r); err != nil {
			return err
		}
	}
	return db.Prune(cfg.HistoryLimit)
}

// printBatch writes one line per result in invocation order, then the
// message a shared display would end up with. It returns the number of
// failed results.
func printBatch(w io.Writer, b actions.Batch) int {
	failed := 0
	for _, r := range b.Results {
		fmt.Fprintln(w, formatResult(r))
		if r.Failed() {
			failed++
		}
	}
	if last, ok := b.Last(); ok && len(b.Results) > 1 {
		fmt.Fprintf(w, "message: %s (from #%d %s)\n", last.Message, last.Seq, last.Action)
	}
	return failed
}

func formatResult(r actions.Result) string {
	outcome := "ok"
	if r.Failed() {
		outcome = "failed"
	}
	status := "-"
	if r.StatusCode != 0 {
		status = fmt.Sprint(r.StatusCode)
	}
	return fmt.Sprintf("#%d %s %s %s: %s", r.Seq, r.Action, status, outcome, r.Message)
}

func historyCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Print recent results from the activity log",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Number of entries"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.DBPath); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(c.App.Writer, "No activity yet.")
				return nil
			}
			db, err := history.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening activity log: %w", err)
			}
			defer db.Close()

			entries, err := db.Recent(c.Int("limit"))
			if err != nil {
				return fmt.Errorf("reading activity log: %w", err)
			}
			for _, e := range entries {
				outcome := "ok"
				if e.Failed {
					outcome = "failed"
				}
				fmt.Fprintf(c.App.Writer, "%s #%d %s %d %s: %s\n",
					e.RecordedAt.Format("2006-01-02 15:04:05"), e.Seq, e.Action, e.StatusCode, outcome, e.Message)
			}
			return nil
		},
	}
}
