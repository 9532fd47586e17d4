package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// Key formats:
//
//	session:<token>        JSON record, expires with the session
//	user_sessions:<userID> set of live tokens for bulk logout
const (
	sessionPrefix     = "session:"
	userSessionPrefix = "user_sessions:"
)

type sessionRecord struct {
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepository implements ports.SessionRepository on Redis. Each record
// carries a TTL equal to the session's remaining lifetime.
type SessionRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client, now: time.Now}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return domain.Invalidf("session already expired")
	}
	payload, err := json.Marshal(sessionRecord{UserID: s.UserID, ExpiresAt: s.ExpiresAt.UTC(), CreatedAt: s.CreatedAt.UTC()})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	index := userSessionsKey(s.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionPrefix+s.Token, payload, ttl)
		pipe.SAdd(ctx, index, s.Token)
		// Sessions share one lifetime, so the newest one bounds the index.
		pipe.Expire(ctx, index, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &domain.Session{Token: token, UserID: rec.UserID, ExpiresAt: rec.ExpiresAt, CreatedAt: rec.CreatedAt}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	s, err := r.Find(ctx, token)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionPrefix+token)
		pipe.SRem(ctx, userSessionsKey(s.UserID), token)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	index := userSessionsKey(userID)
	tokens, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionPrefix+t)
	}
	keys = append(keys, index)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func userSessionsKey(userID int64) string {
	return userSessionPrefix + strconv.FormatInt(userID, 10)
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
