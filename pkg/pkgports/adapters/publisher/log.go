package publisher

import (
	"context"
	"storefront/pkg/logger"
	"storefront/pkg/pkgports"

	"go.uber.org/zap"
)

// LogPublisher writes every value to the context logger instead of a broker,
// used when no kafka brokers are configured
type LogPublisher[ValueType any] struct {
	topic string
}

// NewLogPublisher creates a publisher that only logs
func NewLogPublisher[ValueType any](topic string) pkgports.Publisher[ValueType] {
	return &LogPublisher[ValueType]{topic: topic}
}

// Publish logs the value at info level, never fails
func (p *LogPublisher[ValueType]) Publish(ctx context.Context, key string, value ValueType) error {
	logger.GetOrCreateLoggerFromCtx(ctx).Info(ctx, "message not sent, no broker configured",
		zap.String("topic", p.topic),
		zap.String("key", key),
		zap.Any("value", value),
	)
	return nil
}

// Close does nothing
func (p *LogPublisher[_]) Close() error {
	return nil
}
