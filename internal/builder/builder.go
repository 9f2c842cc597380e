package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/demyanov-realty/review-bot/internal/api"
	reviewapi "github.com/demyanov-realty/review-bot/internal/api/review"
	"github.com/demyanov-realty/review-bot/internal/config"
	"github.com/demyanov-realty/review-bot/internal/engine"
	"github.com/demyanov-realty/review-bot/internal/integration/yagpt"
	"github.com/demyanov-realty/review-bot/internal/repository"
	"github.com/demyanov-realty/review-bot/internal/session"
	"github.com/demyanov-realty/review-bot/internal/telegram"
	"go.uber.org/zap"
)

// Build assembles the admin API application
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building admin API",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	reviewRepo := repository.NewReviewPostgres(db)
	reviewHandler := reviewapi.NewHandler(reviewRepo)

	router := api.SetupRouter(reviewHandler, logger)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Admin API built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	reviewRepo := repository.NewReviewPostgres(db)
	sessions := session.NewStore(cfg.TelegramCfg.SessionTTL)

	var generator engine.TextGenerator
	if cfg.EnableMocks {
		logger.Info("Using mock connector for review generation")
		generator = yagpt.NewMockConnector(logger)
	} else {
		generator = yagpt.NewConnector(cfg.YaGPTCfg, logger)
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, sessions, generator, reviewRepo, cfg.PlatformLinks, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
