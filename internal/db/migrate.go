package db

import (
	"context"
	"database/sql"
	"fmt"

	"serviceplan/internal/db/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// EnsureSchema creates the service plan tables if they are missing. Running
// it against an up to date schema is a no-op.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return withGoose(ctx, pool, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		return nil
	})
}

// DropSchema removes every table created by EnsureSchema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return withGoose(ctx, pool, func(db *sql.DB) error {
		if err := goose.DownToContext(ctx, db, ".", 0); err != nil {
			return fmt.Errorf("revert migrations: %w", err)
		}
		return nil
	})
}

func withGoose(ctx context.Context, pool *pgxpool.Pool, fn func(db *sql.DB) error) error {
	schema := Schema(pool.Config())

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if schema != "" {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", schema)); err != nil {
			return fmt.Errorf("create schema %s: %w", schema, err)
		}
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return fn(db)
}
