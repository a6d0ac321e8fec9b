package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/db"
)

func DownCmd(cfg *config.Config) *cobra.Command {
	var steps int

	command := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			return withDB(cfg, func(database *sqlx.DB) error {
				for range steps {
					err := db.MigrateDown(database.DB, cfg.DBDriver)
					if err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	command.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")
	return command
}
