package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/demyanov-realty/review-bot/internal/config"
	"github.com/demyanov-realty/review-bot/internal/engine"
	"github.com/demyanov-realty/review-bot/internal/entity"
	pkglogger "github.com/demyanov-realty/review-bot/internal/pkg/logger"
	"github.com/demyanov-realty/review-bot/internal/telegram/keyboard"
	"github.com/demyanov-realty/review-bot/internal/telegram/middleware"
	"github.com/demyanov-realty/review-bot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot is the Telegram transport: it receives updates, serializes them
// per user and forwards the normalized text to the conversation engine.
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	engine      *engine.Engine
	generator   engine.TextGenerator
	keyboard    *keyboard.Builder
	links       []entity.PlatformLink
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware

	// dispatcher serializes engine calls per user ID: updates for one
	// user are applied in arrival order, different users run in
	// parallel.
	dispatcher *dispatcher

	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	eng *engine.Engine,
	generator engine.TextGenerator,
	links []entity.PlatformLink,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:       api,
		cfg:       cfg,
		engine:    eng,
		generator: generator,
		keyboard:  keyboard.NewBuilder(),
		links:     links,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
	bot.dispatcher = newDispatcher(bot.handleUpdateWithMiddleware, logger, &bot.wg, bot.stopChan)

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.dispatcher.dispatch(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes an update into the engine
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	message := update.Message

	ctx := ctxzap.ToContext(context.Background(), b.logger)
	ctx = pkglogger.AddFields(ctx,
		zap.String("trace_id", uuid.NewString()),
		zap.Int64("user_id", message.From.ID),
	)

	user := entity.UserRef{
		ID:   message.From.ID,
		Name: displayName(message.From),
	}

	text := message.Text
	if message.IsCommand() {
		switch message.Command() {
		case "start":
			text = entity.TriggerStart
		case "cancel":
			text = entity.TriggerCancel
		case "help":
			b.deliver(ctx, message.Chat.ID, engine.Message{Text: render.MsgHelp})
			return
		case "test":
			b.handleTestCommand(ctx, message.Chat.ID)
			return
		default:
			b.deliver(ctx, message.Chat.ID, engine.Message{Text: "❌ Неизвестная команда. Используйте /start"})
			return
		}
	}

	action := b.engine.Handle(ctx, user, text)
	b.sendAction(ctx, message.Chat.ID, action)
}

// handleTestCommand fires one generation with fixed inputs so operators
// can check that the YaGPT endpoint responds.
func (b *Bot) handleTestCommand(ctx context.Context, chatID int64) {
	prompt := engine.BuildPrompt(
		entity.GenderFemale,
		"Покупка квартиры",
		[]string{"Скорость"},
		true,
		"Тестовый комментарий",
	)

	review, err := b.generator.Generate(ctx, prompt)
	if err != nil {
		ctxzap.Warn(ctx, "test generation failed", zap.Error(err))
		b.deliver(ctx, chatID, engine.Message{Text: "❌ YaGPT не отвечает. Проверьте настройки."})
		return
	}

	b.deliver(ctx, chatID, engine.Message{Text: fmt.Sprintf("✅ YaGPT работает! Тестовый отзыв:\n\n%s", review)})
}

// Announce sends an interim notice during long-running engine steps.
// The survey runs in private chats, where chat ID equals user ID.
func (b *Bot) Announce(ctx context.Context, user entity.UserRef, msg engine.Message) {
	b.deliver(ctx, user.ID, msg)
}

func (b *Bot) sendAction(ctx context.Context, chatID int64, action engine.Action) {
	for _, m := range action.Messages {
		b.deliver(ctx, chatID, m)
	}
}

func (b *Bot) deliver(ctx context.Context, chatID int64, m engine.Message) {
	msg := tgbotapi.NewMessage(chatID, m.Text)
	if m.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	switch {
	case len(m.Choices) > 0:
		msg.ReplyMarkup = b.keyboard.Reply(m.Choices)
	case m.ShowLinks:
		msg.ReplyMarkup = b.keyboard.Platforms(b.links)
	case m.RemoveKeyboard:
		msg.ReplyMarkup = b.keyboard.Remove()
	}

	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func displayName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return user.FirstName
}
