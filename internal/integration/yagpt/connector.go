package yagpt

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/demyanov-realty/review-bot/internal/config"
	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/demyanov-realty/review-bot/internal/integration/common"
	pkghttp "github.com/demyanov-realty/review-bot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const systemPrompt = "Ты генератор естественных отзывов о риелторских услугах."

// Connector calls the YandexGPT completion endpoint. Every attempt is
// bounded by the configured request timeout; transport errors and
// non-2xx statuses are retried with exponential backoff up to the
// configured attempt count, after which the error is returned and the
// caller falls back to templated text.
type Connector struct {
	config    config.YaGPTConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.YaGPTConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithAuthToken("Api-Key", cfg.APIKey),
		),
		config: cfg,
		logger: logger,
	}
}

// Generate produces review prose for the given prompt.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "generating review via YandexGPT",
		zap.String("model", c.config.Model),
	)

	req := &entity.CompletionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", c.config.FolderID, c.config.Model),
		CompletionOptions: entity.CompletionOptions{
			Stream:      false,
			Temperature: c.config.Temperature,
			MaxTokens:   c.config.MaxTokens,
		},
		Messages: []entity.CompletionMessage{
			{Role: entity.CompletionRoleSystem, Text: systemPrompt},
			{Role: entity.CompletionRoleUser, Text: prompt},
		},
	}

	opts := append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))

	text, err := retry.DoWithData(func() (string, error) {
		return c.complete(ctx, req)
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("generate review: %w", err)
	}

	ctxzap.Info(ctx, "review generated successfully",
		zap.Int("result_length", len(text)),
	)

	return text, nil
}

func (c *Connector) complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	var resp entity.CompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, "", req, &resp,
		pkghttp.WithHeader("x-folder-id", c.config.FolderID),
	)
	if err != nil {
		ctxzap.Warn(ctx, "completion attempt failed", zap.Error(err))
		return "", err
	}

	if len(resp.Result.Alternatives) == 0 {
		return "", entity.ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Result.Alternatives[0].Message.Text)
	if text == "" {
		return "", entity.ErrEmptyCompletion
	}

	return text, nil
}
