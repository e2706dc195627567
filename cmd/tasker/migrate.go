// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/urfave/cli/v2"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, logger, err := bootstrap(c)
			if err != nil {
				return err
			}

			backend, err := openBackend(c.Context, cfg, logger, true)
			if err != nil {
				return err
			}
			defer backend.Close()

			logger.Info("migrations_complete")
			return nil
		},
	}
}
