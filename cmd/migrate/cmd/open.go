package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap/internal/app"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/db"
)

// withDB opens a single-connection pool for the duration of fn.
func withDB(cfg *config.Config, fn func(database *sqlx.DB) error) error {
	dsn, err := app.DSN(cfg)
	if err != nil {
		return err
	}

	database, err := db.Init(cfg.DBDriver, dsn, db.Pool{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		closeErr := db.Close(database)
		if closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	return fn(database)
}
