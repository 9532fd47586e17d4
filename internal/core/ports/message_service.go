package ports

import (
	"context"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// SendMessageInput carries a new message.
type SendMessageInput struct {
	RecipientID    int64
	ThreadID       string // optional; must include the sender
	ApplicationID  *int64 // optional context for a new thread
	Body           string
	IdempotencyKey string
}

// ThreadDetail is a thread with its messages, oldest first.
type ThreadDetail struct {
	Thread   *domain.Thread
	Messages []*domain.Message
}

// MessageService defines use-case operations for messaging.
type MessageService interface {
	Send(ctx context.Context, caller *domain.Identity, input SendMessageInput) (*domain.Message, error)
	ListThreads(ctx context.Context, caller *domain.Identity) ([]*domain.Thread, error)
	GetThread(ctx context.Context, caller *domain.Identity, threadID string) (*ThreadDetail, error)
	MarkRead(ctx context.Context, caller *domain.Identity, threadID string) (int64, error)
}
