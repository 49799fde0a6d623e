package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dragondrop/internal/platform/config"
)

// Connect opens a pgx pool. An empty DATABASE_URL is not an error here;
// callers treat a nil pool as the unconfigured state and stores degrade to
// empty reads.
func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
