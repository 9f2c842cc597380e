package yagpt

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector - мок-реализация генератора отзывов для тестирования
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Generate - мок генерации отзыва
func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating review", zap.Int("prompt_length", len(prompt)))

	return "Обратился в Demyanov realty и остался очень доволен работой агентства. " +
		"Всё прошло быстро и прозрачно, менеджер всегда был на связи. " +
		"Обязательно порекомендую знакомым.", nil
}
