package messaging

import (
	"context"

	"github.com/vanagogh/mint-gateway/internal/domain"
)

// Publisher defines the interface for publishing gateway events to a message
// broker. Publishing is best-effort: a failed publish never blocks or fails
// the operation that produced the event.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a gateway event to the message broker
	PublishEvent(ctx context.Context, event *domain.GatewayEvent) error
	// Close closes the connection
	Close()
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards all events
func NewNoopPublisher() Publisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishEvent(ctx context.Context, event *domain.GatewayEvent) error {
	return nil
}

func (p *NoopPublisher) Close() {}
