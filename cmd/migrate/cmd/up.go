package cmd

import (
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/db"
)

func UpCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cfg, func(database *sqlx.DB) error {
				return db.RunMigrations(database.DB, cfg.DBDriver)
			})
		},
	}
}
