package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"serviceplan/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

const searchPathParam = "search_path"

// PoolConfig parses the database url. A search_path given in the url wins
// over the configured schema; otherwise the schema becomes the search_path.
func PoolConfig(config *types.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	params := poolConfig.ConnConfig.RuntimeParams
	if _, ok := params[searchPathParam]; !ok && config.DatabaseSchema != "" {
		params[searchPathParam] = config.DatabaseSchema
	}

	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.MaxConnLifetime = 45 * time.Minute

	return poolConfig, nil
}

// Schema is the schema the service plan tables live in: the first entry of
// the pool's search_path, or "" when none is set.
func Schema(poolConfig *pgxpool.Config) string {
	path := poolConfig.ConnConfig.RuntimeParams[searchPathParam]
	first, _, _ := strings.Cut(path, ",")
	first = strings.Trim(strings.TrimSpace(first), `"`)
	if first == "$user" {
		return ""
	}
	return first
}

func Connect(ctx context.Context, config *types.Config) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
