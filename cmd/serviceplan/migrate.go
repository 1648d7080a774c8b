package main

import (
	"context"
	"fmt"

	"serviceplan/internal/db"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create or upgrade the service plan tables",
	Action: func(cCtx *cli.Context) error {
		config, err := loadConfig(cCtx)
		if err != nil {
			return err
		}
		logger := newLogger(config)

		ctx := context.Background()

		pool, err := db.Connect(ctx, config)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		logger.WithField("schema", db.Schema(pool.Config())).Info("schema is up to date")
		return nil
	},
}

var uninstallCommand = &cli.Command{
	Name:  "uninstall",
	Usage: "Drop every service plan table, including entries, uploads and the roster",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "Confirm that all service plan data may be deleted",
		},
	},
	Action: func(cCtx *cli.Context) error {
		if !cCtx.Bool("yes") {
			return fmt.Errorf("refusing to drop tables without --yes")
		}

		config, err := loadConfig(cCtx)
		if err != nil {
			return err
		}
		logger := newLogger(config)

		ctx := context.Background()

		pool, err := db.Connect(ctx, config)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.DropSchema(ctx, pool); err != nil {
			return err
		}

		logger.WithField("schema", db.Schema(pool.Config())).Warn("service plan tables dropped")
		return nil
	},
}
