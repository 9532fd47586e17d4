// Package mail delivers notification emails over SMTP, or to the log when no
// SMTP host is configured.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender implements ports.MailSender with go-mail.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.From}, nil
}

func (s *SMTPSender) Send(ctx context.Context, n domain.Notification) error {
	msg, err := buildMessage(s.from, n)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMessage(from string, n domain.Notification) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(n.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", n.To, err)
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, n.Body)
	return msg, nil
}

// ConsoleSender writes notifications to the log. Used in development.
type ConsoleSender struct {
	log zerolog.Logger
}

func NewConsoleSender(log zerolog.Logger) *ConsoleSender {
	return &ConsoleSender{log: log}
}

func (s *ConsoleSender) Send(_ context.Context, n domain.Notification) error {
	s.log.Info().
		Str("to", n.To).
		Str("kind", n.Kind).
		Str("subject", n.Subject).
		Str("body", n.Body).
		Msg("email (console)")
	return nil
}

// NewSender picks the SMTP sender when a host is configured.
func NewSender(cfg Config, log zerolog.Logger) (ports.MailSender, error) {
	if cfg.Host == "" {
		log.Warn().Msg("SMTP_HOST not set, emails will be logged instead of sent")
		return NewConsoleSender(log), nil
	}
	return NewSMTPSender(cfg)
}

var (
	_ ports.MailSender = (*SMTPSender)(nil)
	_ ports.MailSender = (*ConsoleSender)(nil)
)
