// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/tasker/internal/auth"
)

func sessionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "Session maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "sweep",
				Usage: "Delete every expired session and print how many were removed",
				Action: func(c *cli.Context) error {
					cfg, logger, err := bootstrap(c)
					if err != nil {
						return err
					}

					backend, err := openBackend(c.Context, cfg, logger, cfg.AutoMigrate)
					if err != nil {
						return err
					}
					defer backend.Close()

					sessions := auth.NewSessions(backend.Sessions, cfg.SessionTTL)
					removed, err := sessions.SweepExpired(c.Context)
					if err != nil {
						return err
					}

					logger.Info("expired_sessions_swept", slog.Int64("removed", removed))
					_, err = fmt.Fprintln(c.App.Writer, removed)
					return err
				},
			},
		},
	}
}
