package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/visitor-management/internal/database"
	"github.com/frahmantamala/visitor-management/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded sql migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log := logger.LoggerWrapper()
	if migrateRollback {
		if err := database.Rollback(ctx, db); err != nil {
			return err
		}
		log.Info("rolled back latest migration", "driver", db.Driver)
		return nil
	}

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info("migrations applied", "driver", db.Driver)
	return nil
}
