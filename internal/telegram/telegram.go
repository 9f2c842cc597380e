package telegram

import (
	"context"
	"fmt"

	"github.com/demyanov-realty/review-bot/internal/config"
	"github.com/demyanov-realty/review-bot/internal/engine"
	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/demyanov-realty/review-bot/internal/session"
	"github.com/demyanov-realty/review-bot/internal/telegram/bot"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies. The
// conversation engine is built here so its interim notices can be
// delivered through the bot itself.
func NewBot(
	cfg *config.TelegramConfig,
	sessions *session.Store,
	generator engine.TextGenerator,
	reviews engine.ReviewStore,
	links []entity.PlatformLink,
	logger *zap.Logger,
) (Bot, error) {
	var b *bot.Bot

	eng := engine.New(sessions, generator, reviews, logger,
		engine.WithAnnouncer(func(ctx context.Context, user entity.UserRef, msg engine.Message) {
			b.Announce(ctx, user, msg)
		}),
	)

	b, err := bot.New(cfg, eng, generator, links, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
