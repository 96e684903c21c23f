package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yukikurage/join-board-api/internal/cache"
	"github.com/yukikurage/join-board-api/internal/config"
	"github.com/yukikurage/join-board-api/internal/database"
	"github.com/yukikurage/join-board-api/internal/handlers"
	"github.com/yukikurage/join-board-api/internal/repository"
	"github.com/yukikurage/join-board-api/internal/router"
	"github.com/yukikurage/join-board-api/internal/services"
	"github.com/yukikurage/join-board-api/internal/translator"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serveCmd := newServeCommand()
	// no subcommand starts the server
	root := &cobra.Command{
		Use:          "server",
		Short:        "Join board API",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}

	root.AddCommand(serveCmd, newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			return serve(cfg, logger)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			if err := database.Connect(cfg); err != nil {
				logger.Error("failed to connect to database", zap.Error(err))
				return err
			}
			return migrate(cfg.ResetDB || reset)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop all tables before migrating")
	return cmd
}

func setupLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.GinMode == gin.DebugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		zap.L().Debug("failed to sync logger", zap.Error(err))
	}
}

func migrate(reset bool) error {
	db := database.GetDB()
	if reset {
		if err := database.Reset(db); err != nil {
			return err
		}
	}
	return database.Migrate(db)
}

func serve(cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.GinMode)

	if err := translator.Init(); err != nil {
		logger.Error("failed to load translations", zap.Error(err))
		return err
	}

	if err := database.Connect(cfg); err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return err
	}
	if err := migrate(cfg.ResetDB); err != nil {
		logger.Error("failed to run migrations", zap.Error(err))
		return err
	}
	db := database.GetDB()

	// Token cache is optional
	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer cacheClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, token lookups go to the database", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	contactRepo := repository.NewContactRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	contactService := services.NewContactService(contactRepo)
	authService := services.NewAuthService(
		userRepo,
		tokenRepo,
		contactService,
		cache.NewTokenCache(cacheClient, cfg.TokenCacheTTL),
		cfg.GuestPassword,
	)
	taskService := services.NewTaskService(taskRepo, contactRepo)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies", zap.Error(err))
		return err
	}

	router.Register(r, cfg, logger, authService, router.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Contact: handlers.NewContactHandler(contactService),
		Task:    handlers.NewTaskHandler(taskService),
		Health:  handlers.NewHealthHandler(db, cacheClient),
	})

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Error("could not start server", zap.Error(err))
		return err
	}
	return nil
}
