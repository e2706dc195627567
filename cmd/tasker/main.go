// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command tasker is the entry point for the Tasker HTTP API and its
// operator commands.
//
// # Commands
//
//   - serve: run the HTTP API with graceful shutdown.
//   - migrate: apply pending schema migrations and exit.
//   - sessions sweep: delete expired sessions and print the count.
//
// Configuration comes from the environment (see internal/platform/config).
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/tasker/internal/platform/constants"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("application_failed", slog.Any("error", err))
		cancel()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    constants.AppName,
		Usage:   "Multi-user task tracker",
		Version: constants.AppVersion,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging (overrides DEBUG)",
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			sessionsCmd(),
		},
	}
}
