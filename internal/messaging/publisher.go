package messaging

import (
	"context"

	"github.com/vestern/vestern/internal/domain"
)

// Publisher defines the interface for publishing rewrite events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishTokenRewritten announces that a transaction received a fresh token
	PublishTokenRewritten(ctx context.Context, event *domain.TokenRewrittenEvent) error
	// Close closes the connection
	Close()
}
