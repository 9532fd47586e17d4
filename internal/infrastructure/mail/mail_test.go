package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

func TestBuildMessage(t *testing.T) {
	n := domain.StatusChangeNotification("aminata@example.com", "Mason", domain.ApplicationShortlisted)

	msg, err := buildMessage("SkillsHub <no-reply@skillshub.sl>", n)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "To: <aminata@example.com>")
	assert.Contains(t, out, "Subject: Update on your application for Mason")
	assert.Contains(t, out, "is now SHORTLISTED")
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	_, err := buildMessage("no-reply@skillshub.sl", domain.Notification{To: "not an address"})
	assert.Error(t, err)
}

func TestNewSender_ConsoleWithoutHost(t *testing.T) {
	var buf bytes.Buffer
	sender, err := NewSender(Config{}, zerolog.New(&buf))
	require.NoError(t, err)
	require.IsType(t, &ConsoleSender{}, sender)

	require.NoError(t, sender.Send(context.Background(), domain.Notification{To: "a@b.sl", Kind: "new_message", Subject: "hi"}))
	assert.Contains(t, buf.String(), `"kind":"new_message"`)
}

func TestNewSender_SMTPWithHost(t *testing.T) {
	sender, err := NewSender(Config{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "a@b.sl"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)
}
