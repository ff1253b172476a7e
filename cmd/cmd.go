package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/internal/database"
	"github.com/frahmantamala/visitor-management/pkg/logger"
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "visitor-management",
	Short: "Visitor Management",
	Long:  `Visitor check-in and approval API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and initializes the process logger from it.
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *internal.Config) (*database.DB, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "directory containing config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
