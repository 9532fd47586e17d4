package ports

import (
	"context"
	"io"
	"time"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// ObjectStore is an S3-compatible blob store.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// MailSender delivers a single email.
type MailSender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Notifier queues notifications for fire-and-forget delivery.
type Notifier interface {
	Notify(n domain.Notification)
}

// DedupChecker remembers idempotency keys.
type DedupChecker interface {
	// Claim records key and reports whether it was new.
	Claim(ctx context.Context, scope, key string) (bool, error)
	// Release forgets key so a failed request can be retried.
	Release(ctx context.Context, scope, key string) error
}
