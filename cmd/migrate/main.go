package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skillswap/skillswap/cmd/migrate/cmd"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.AppEnv, cfg.SentryDSN)
	defer logger.Flush()

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Database schema migrations for skillswap",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.UpCmd(cfg))
	rootCmd.AddCommand(cmd.DownCmd(cfg))
	rootCmd.AddCommand(cmd.StatusCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		logger.Flush()
		os.Exit(1)
	}
}
