package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

func newMessageFixture() (*MessageService, *stubMessageRepo, *stubNotifier) {
	repo := newStubMessageRepo()
	users := newStubUserRepo(
		&domain.User{ID: seekerID, Email: "seeker@example.com"},
		&domain.User{ID: employerA, Email: "a@corp.sl"},
		&domain.User{ID: employerB, Email: "b@corp.sl"},
	)
	notifier := &stubNotifier{}
	jobs := newStubJobRepo(&domain.Job{ID: 1, EmployerUserID: employerA, Status: domain.JobStatusOpen})
	apps := newStubApplicationRepo(jobs,
		&domain.Application{ID: 100, JobID: 1, SeekerUserID: seekerID, Status: domain.ApplicationPending},
	)
	return NewMessageService(repo, users, apps, newStubDedup(), notifier, zerolog.Nop()), repo, notifier
}

func TestMessageService_SendAndRead(t *testing.T) {
	svc, repo, notifier := newMessageFixture()
	sender := identity(employerA, domain.RoleEmployer)
	sender.FirstName = "Kadiatu"

	msg, err := svc.Send(context.Background(), sender, ports.SendMessageInput{RecipientID: seekerID, Body: "Interview on <i>Monday</i>?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Body != "Interview on Monday?" || msg.RecipientID != seekerID {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].To != "seeker@example.com" {
		t.Fatalf("recipient not notified: %+v", notifier.sent)
	}

	// reply on the same thread without naming the recipient
	reply, err := svc.Send(context.Background(), identity(seekerID, domain.RoleJobSeeker), ports.SendMessageInput{ThreadID: msg.ThreadID, Body: "Yes"})
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if reply.RecipientID != employerA || len(repo.threads) != 1 {
		t.Fatalf("reply not routed to the same thread: %+v", reply)
	}

	n, err := svc.MarkRead(context.Background(), identity(seekerID, domain.RoleJobSeeker), msg.ThreadID)
	if err != nil || n != 1 {
		t.Fatalf("expected one message marked read, got %d %v", n, err)
	}

	detail, err := svc.GetThread(context.Background(), sender, msg.ThreadID)
	if err != nil || len(detail.Messages) != 2 {
		t.Fatalf("unexpected thread: %+v %v", detail, err)
	}
}

func TestMessageService_ParticipantScoping(t *testing.T) {
	svc, _, _ := newMessageFixture()
	msg, _ := svc.Send(context.Background(), identity(employerA, domain.RoleEmployer), ports.SendMessageInput{RecipientID: seekerID, Body: "hello"})
	outsider := identity(employerB, domain.RoleEmployer)

	if _, err := svc.GetThread(context.Background(), outsider, msg.ThreadID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.MarkRead(context.Background(), outsider, msg.ThreadID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Send(context.Background(), outsider, ports.SendMessageInput{ThreadID: msg.ThreadID, Body: "intrude"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	threads, _ := svc.ListThreads(context.Background(), outsider)
	if len(threads) != 0 {
		t.Fatalf("outsider sees threads: %+v", threads)
	}
}

func TestMessageService_Send_Validation(t *testing.T) {
	svc, _, _ := newMessageFixture()
	caller := identity(employerA, domain.RoleEmployer)

	cases := map[string]ports.SendMessageInput{
		"empty body":        {RecipientID: seekerID, Body: "  "},
		"no recipient":      {Body: "hi"},
		"self":              {RecipientID: employerA, Body: "hi"},
		"unknown recipient": {RecipientID: 404, Body: "hi"},
		"unknown thread":    {ThreadID: "nope", Body: "hi"},
	}
	for name, in := range cases {
		if _, err := svc.Send(context.Background(), caller, in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestMessageService_Send_IdempotencyKey(t *testing.T) {
	svc, repo, _ := newMessageFixture()
	caller := identity(employerA, domain.RoleEmployer)
	in := ports.SendMessageInput{RecipientID: seekerID, Body: "once", IdempotencyKey: "abc"}

	if _, err := svc.Send(context.Background(), caller, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Send(context.Background(), caller, in); !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	if len(repo.messages) != 1 {
		t.Fatalf("expected one stored message, got %d", len(repo.messages))
	}
}

func TestMessageService_Send_ApplicationLink(t *testing.T) {
	app := int64(100)
	unknown := int64(404)
	outsider := identity(employerB, domain.RoleEmployer)

	cases := []struct {
		name   string
		caller *domain.Identity
		in     ports.SendMessageInput
		check  func(error) bool
	}{
		{"unknown application", identity(employerA, domain.RoleEmployer),
			ports.SendMessageInput{RecipientID: seekerID, ApplicationID: &unknown, Body: "hi"},
			func(err error) bool { return errors.Is(err, domain.ErrValidation) && !domain.IsNotFound(err) }},
		{"caller not a party", outsider,
			ports.SendMessageInput{RecipientID: seekerID, ApplicationID: &app, Body: "hi"},
			func(err error) bool { return errors.Is(err, domain.ErrForbidden) }},
		{"recipient not a party", identity(seekerID, domain.RoleJobSeeker),
			ports.SendMessageInput{RecipientID: employerB, ApplicationID: &app, Body: "hi"},
			func(err error) bool { return errors.Is(err, domain.ErrValidation) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newMessageFixture()
			_, err := svc.Send(context.Background(), tc.caller, tc.in)
			if !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.threads) != 0 {
				t.Fatalf("no thread must be opened: %+v", repo.threads)
			}
		})
	}

	svc, repo, _ := newMessageFixture()
	msg, err := svc.Send(context.Background(), identity(employerA, domain.RoleEmployer),
		ports.SendMessageInput{RecipientID: seekerID, ApplicationID: &app, Body: "About your application"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	thread := repo.threads[msg.ThreadID]
	if thread.ApplicationID == nil || *thread.ApplicationID != app {
		t.Fatalf("application not linked: %+v", thread)
	}
}
