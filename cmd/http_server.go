package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/visitor-management/api"
	"github.com/frahmantamala/visitor-management/internal"
	"github.com/frahmantamala/visitor-management/internal/auth"
	"github.com/frahmantamala/visitor-management/internal/core/events"
	"github.com/frahmantamala/visitor-management/internal/database"
	"github.com/frahmantamala/visitor-management/internal/photo"
	"github.com/frahmantamala/visitor-management/internal/transport/rest"
	"github.com/frahmantamala/visitor-management/internal/user"
	userRepository "github.com/frahmantamala/visitor-management/internal/user/repository"
	"github.com/frahmantamala/visitor-management/internal/visitor"
	visitorRepository "github.com/frahmantamala/visitor-management/internal/visitor/repository"
	"github.com/frahmantamala/visitor-management/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer()
	},
}

// Dependencies is the application context shared by every request handler.
type Dependencies struct {
	Config   *internal.Config
	DB       *database.DB
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	deps, err := initializeDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		deps.Logger.Info("starting HTTP server", "address", addr, "driver", deps.DB.Driver)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	deps.Logger.Info("server stopped")
	return nil
}

func initializeDependencies(ctx context.Context, cfg *internal.Config) (*Dependencies, error) {
	log := logger.LoggerWrapper()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	openAPI, err := api.Load(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("openapi document loaded", "paths", len(openAPI.Paths.Map()))

	photos, err := photo.NewStore(cfg.Storage.UploadDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tokens, err := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	bus := events.NewEventBus(log)
	bus.Subscribe(events.AllEvents, events.AuditLogHandler(log))

	userService := user.NewService(
		userRepository.NewUserRepository(db.SQL, cfg.Database.QueryTimeout),
		cfg.Security.BCryptCost,
		log,
	)
	authService := auth.NewService(userService, tokens, cfg.Cache.CredentialSize, cfg.Cache.CredentialTTL, log)
	visitorService := visitor.NewService(
		visitorRepository.NewVisitorRepository(db.Gorm, cfg.Database.QueryTimeout),
		photos,
		bus,
		log,
	)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Health:  rest.NewHealthHandler(db.Std(), db.Driver),
		Auth:    auth.NewHandler(authService),
		RBAC:    auth.NewRBACAuthorization(auth.DefaultPolicy(), log),
		User:    user.NewHandler(userService),
		Visitor: visitor.NewHandler(visitorService, cfg.Server.MaxBodyBytes),
		Photo:   photo.NewHandler(photos, log),
		OpenAPI: api.Document,
	}, log)

	return &Dependencies{
		Config:   cfg,
		DB:       db,
		EventBus: bus,
		Router:   router,
		Logger:   log,
	}, nil
}
