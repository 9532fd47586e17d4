package service

import (
	"context"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/api/metrics"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	messageDedupScope = "message"
	maxMessageLen     = 5000
)

// MessageService implements direct messaging between two users.
// Every thread operation is scoped to the caller being a participant.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	apps     ports.ApplicationRepository
	dedup    ports.DedupChecker
	notifier ports.Notifier
	now      func() time.Time
	log      zerolog.Logger
}

func NewMessageService(
	messages ports.MessageRepository,
	users ports.UserRepository,
	apps ports.ApplicationRepository,
	dedup ports.DedupChecker,
	notifier ports.Notifier,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		apps:     apps,
		dedup:    dedup,
		notifier: notifier,
		now:      time.Now,
		log:      log,
	}
}

// Send posts a message, opening a thread with the recipient when needed.
func (s *MessageService) Send(ctx context.Context, caller *domain.Identity, in ports.SendMessageInput) (*domain.Message, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	body := plainText(in.Body)
	if body == "" {
		return nil, domain.Invalidf("body is required")
	}
	if utf8.RuneCountInString(body) > maxMessageLen {
		return nil, domain.Invalidf("body must be at most %d characters", maxMessageLen)
	}

	thread, recipientID, err := s.resolveThread(ctx, caller, in)
	if err != nil {
		return nil, err
	}
	recipient, err := s.users.FindByID(ctx, recipientID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.Invalidf("recipient_id references an unknown user")
		}
		return nil, err
	}
	if thread == nil && in.ApplicationID != nil {
		if err := s.checkApplicationLink(ctx, caller, recipientID, *in.ApplicationID); err != nil {
			return nil, err
		}
	}

	scope := messageDedupScope + ":" + strconv.FormatInt(caller.UserID, 10)
	if in.IdempotencyKey != "" {
		fresh, err := s.dedup.Claim(ctx, scope, in.IdempotencyKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Int64("user_id", caller.UserID).Msg("dedup check failed, processing anyway")
		case !fresh:
			metrics.DedupDecisionsTotal.WithLabelValues("message", "duplicate").Inc()
			return nil, domain.ErrDuplicateRequest
		default:
			metrics.DedupDecisionsTotal.WithLabelValues("message", "new").Inc()
		}
	}

	if thread == nil {
		thread, err = s.messages.FindOrCreateThread(ctx, caller.UserID, recipientID, in.ApplicationID)
		if err != nil {
			s.release(ctx, scope, in.IdempotencyKey)
			return nil, err
		}
	}

	msg, err := s.messages.InsertMessage(ctx, &domain.Message{
		ThreadID:    thread.ID,
		SenderID:    caller.UserID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.release(ctx, scope, in.IdempotencyKey)
		return nil, err
	}

	s.notifier.Notify(domain.NewMessageNotification(recipient.Email, caller.DisplayName()))
	s.log.Debug().Str("thread_id", thread.ID).Int64("sender_id", caller.UserID).Msg("message sent")
	return msg, nil
}

// checkApplicationLink allows a new thread to reference an application only
// when it exists and the two participants are its applicant and the employer
// who owns the job. Admins may open such a thread with either party.
func (s *MessageService) checkApplicationLink(ctx context.Context, caller *domain.Identity, recipientID, applicationID int64) error {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Invalidf("application_id references an unknown application")
		}
		return err
	}
	parties := func(id int64) bool { return id == app.SeekerUserID || id == app.EmployerUserID }
	if !parties(caller.UserID) && !caller.HasRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if !parties(recipientID) {
		return domain.Invalidf("recipient_id is not a party to application %d", applicationID)
	}
	return nil
}

// resolveThread returns the existing thread named by the input, if any, and
// the id of the other party.
func (s *MessageService) resolveThread(ctx context.Context, caller *domain.Identity, in ports.SendMessageInput) (*domain.Thread, int64, error) {
	if in.ThreadID == "" {
		if in.RecipientID <= 0 {
			return nil, 0, domain.Invalidf("recipient_id or thread_id is required")
		}
		if in.RecipientID == caller.UserID {
			return nil, 0, domain.Invalidf("cannot send a message to yourself")
		}
		return nil, in.RecipientID, nil
	}

	thread, err := s.messages.FindThread(ctx, in.ThreadID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, 0, domain.Invalidf("thread_id references an unknown thread")
		}
		return nil, 0, err
	}
	if !thread.HasParticipant(caller.UserID) {
		return nil, 0, domain.ErrForbidden
	}

	var other int64
	for _, p := range thread.Participants {
		if p != caller.UserID {
			other = p
		}
	}
	if in.RecipientID != 0 && in.RecipientID != other {
		return nil, 0, domain.Invalidf("recipient_id does not belong to the thread")
	}
	return thread, other, nil
}

func (s *MessageService) release(ctx context.Context, scope, key string) {
	if key == "" {
		return
	}
	if err := s.dedup.Release(ctx, scope, key); err != nil {
		s.log.Warn().Err(err).Msg("failed to release dedup key")
	}
}

// ListThreads returns the caller's threads, most recent activity first.
func (s *MessageService) ListThreads(ctx context.Context, caller *domain.Identity) ([]*domain.Thread, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.messages.ListThreads(ctx, caller.UserID)
}

// GetThread returns a thread and its messages to a participant.
func (s *MessageService) GetThread(ctx context.Context, caller *domain.Identity, threadID string) (*ports.ThreadDetail, error) {
	thread, err := s.participantThread(ctx, caller, threadID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListMessages(ctx, thread.ID)
	if err != nil {
		return nil, err
	}
	return &ports.ThreadDetail{Thread: thread, Messages: msgs}, nil
}

// MarkRead stamps the caller's unread messages in the thread.
func (s *MessageService) MarkRead(ctx context.Context, caller *domain.Identity, threadID string) (int64, error) {
	thread, err := s.participantThread(ctx, caller, threadID)
	if err != nil {
		return 0, err
	}
	return s.messages.MarkRead(ctx, thread.ID, caller.UserID, s.now().UTC())
}

func (s *MessageService) participantThread(ctx context.Context, caller *domain.Identity, threadID string) (*domain.Thread, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	thread, err := s.messages.FindThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(caller.UserID) {
		return nil, domain.ErrForbidden
	}
	return thread, nil
}

var _ ports.MessageService = (*MessageService)(nil)
