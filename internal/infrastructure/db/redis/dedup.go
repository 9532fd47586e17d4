package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const defaultDedupTTL = 24 * time.Hour

// DedupChecker provides idempotency claims backed by Redis.
// Key format: dedup:<scope>:<key>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
// Claims expire after ttl, or a day when ttl is not positive.
func NewDedupChecker(client *redis.Client, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

// Claim atomically records the key and reports whether this caller was first.
func (d *DedupChecker) Claim(ctx context.Context, scope, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(scope, key), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

// Release forgets a claim so the request can be retried after a failure.
func (d *DedupChecker) Release(ctx context.Context, scope, key string) error {
	if err := d.client.Del(ctx, d.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("dedup release: %w", err)
	}
	return nil
}

func (d *DedupChecker) key(scope, key string) string {
	return fmt.Sprintf("dedup:%s:%s", scope, key)
}

var _ ports.DedupChecker = (*DedupChecker)(nil)
