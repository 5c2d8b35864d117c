package repository

import (
	"context"

	"github.com/address-verification/internal/domain"
)

// StreamRepository dispatches and consumes background jobs over Redis
// streams.
type StreamRepository interface {
	Publish(ctx context.Context, stream string, data []byte) error

	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// Consume reads messages for a consumer group until ctx is cancelled.
	Consume(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	Ack(ctx context.Context, stream, group, messageID string) error
}
