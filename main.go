package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "bridgetui",
		Usage:  "Sign in, sign out and inspect a Bridge server from the terminal",
		Flags:  globalFlags(),
		Action: tuiAction,
		Commands: []*cli.Command{
			runCmd(),
			historyCmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}
