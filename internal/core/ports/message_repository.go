package ports

import (
	"context"
	"time"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// MessageRepository persists threads and messages.
type MessageRepository interface {
	// FindOrCreateThread returns the thread between the two users, creating it if needed.
	FindOrCreateThread(ctx context.Context, a, b int64, applicationID *int64) (*domain.Thread, error)
	FindThread(ctx context.Context, id string) (*domain.Thread, error)
	ListThreads(ctx context.Context, participantID int64) ([]*domain.Thread, error)
	InsertMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListMessages(ctx context.Context, threadID string) ([]*domain.Message, error)
	// MarkRead stamps unread messages addressed to recipientID.
	MarkRead(ctx context.Context, threadID string, recipientID int64, at time.Time) (int64, error)
}
