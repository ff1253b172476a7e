package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/visitor-management/internal/database"
	"github.com/frahmantamala/visitor-management/internal/user"
	userRepository "github.com/frahmantamala/visitor-management/internal/user/repository"
	"github.com/frahmantamala/visitor-management/pkg/logger"
	"github.com/spf13/cobra"
)

var seedPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with default accounts",
	Long:  `Create one staff and one manager account for development. Existing accounts are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if err := database.Migrate(ctx, db); err != nil {
			return err
		}

		log := logger.LoggerWrapper()
		users := user.NewService(
			userRepository.NewUserRepository(db.SQL, cfg.Database.QueryTimeout),
			cfg.Security.BCryptCost,
			log,
		)

		accounts := []user.SignupDTO{
			{Username: "staff", Password: seedPassword, Role: string(user.RoleStaff)},
			{Username: "manager", Password: seedPassword, Role: string(user.RoleManager)},
		}

		for _, account := range accounts {
			_, err := users.Register(ctx, account)
			switch {
			case err == nil:
				log.Info("seeded user", "username", account.Username, "role", account.Role)
			case errors.Is(err, user.ErrDuplicateUsername):
				log.Info("user already exists", "username", account.Username)
			default:
				return fmt.Errorf("seed %s: %w", account.Username, err)
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "password", "password for the seeded accounts")
}
