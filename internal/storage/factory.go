package storage

import (
	"context"
	"fmt"

	"github.com/hyperjump/finsight/internal/config"
)

// New opens the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.DatabaseConfig) (Storage, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgresStorage(ctx, cfg.DSN)
	case "sqlite", "":
		return NewSQLiteStorage(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
