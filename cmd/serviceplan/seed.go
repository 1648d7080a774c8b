package main

import (
	"context"
	"fmt"
	"os"

	"serviceplan/internal/db"
	"serviceplan/internal/seed"
	"serviceplan/internal/store"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Subcommands: []*cli.Command{
		{
			Name:  "roster",
			Usage: "Replace the roster with the names in a YAML file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"f"},
					Usage:    "Path to the roster YAML file",
					Required: true,
				},
			},
			Action: seedRoster,
		},
	},
}

func seedRoster(cCtx *cli.Context) error {
	config, err := loadConfig(cCtx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(config)

	f, err := os.Open(cCtx.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	roster, err := seed.LoadRoster(f)
	if err != nil {
		return err
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	logger.Info("Seeding roster...")
	if err := seed.SeedRoster(ctx, store.NewRosterRepository(pool), roster); err != nil {
		return fmt.Errorf("failed to seed roster: %w", err)
	}

	logger.WithField("fields", len(roster)).Info("Roster seeded successfully")
	return nil
}
