package kafka

import (
	"context"
	"time"

	"aquavalle/pkg/logger"
)

// LoggingProducerMiddleware logs publishes through the structured logger.
func LoggingProducerMiddleware(log *logger.Logger) ProducerMiddleware {
	return func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)
		fields := []any{
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration_ms", duration.Milliseconds(),
		}

		if err != nil {
			log.Error("Failed to publish message", append(fields, "error", err)...)
		} else {
			log.Info("Published message", fields...)
		}

		return err
	}
}

// LoggingConsumerMiddleware logs message processing through the structured logger.
func LoggingConsumerMiddleware(log *logger.Logger) ConsumerMiddleware {
	return func(ctx context.Context, msg Message, next MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)
		fields := []any{
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration_ms", duration.Milliseconds(),
		}

		if err != nil {
			log.Error("Failed to process message", append(fields, "error", err)...)
		} else {
			log.Info("Processed message", fields...)
		}

		return err
	}
}
