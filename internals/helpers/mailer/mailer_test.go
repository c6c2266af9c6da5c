package mailer

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSMTPMailerBuildsMessage(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "u", "p", "no-reply@example.com", 60)
	var got *gomail.Message
	m.send = func(msg *gomail.Message) error {
		got = msg
		return nil
	}

	err := m.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"a@example.com"}, got.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@example.com"}, got.GetHeader("From"))
	assert.Equal(t, []string{"Hi"}, got.GetHeader("Subject"))
}

func TestSMTPMailerHonoursContext(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "", "", "f@example.com", 1)
	m.send = func(*gomail.Message) error { return nil }

	require.NoError(t, m.Send(context.Background(), Message{To: "a@example.com"}))

	// second send must wait a full minute for a token
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, m.Send(ctx, Message{To: "a@example.com"}))
}

func TestLogMailer(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	assert.NoError(t, LogMailer{Log: l}.Send(context.Background(), Message{To: "a@example.com"}))
}

func TestPasswordResetMessage(t *testing.T) {
	msg := PasswordResetMessage("a@example.com", "https://app/reset?token=a&b", time.Hour)
	assert.Equal(t, "a@example.com", msg.To)
	assert.Contains(t, msg.HTML, "https://app/reset?token=a&amp;b")
	assert.Contains(t, msg.HTML, "60 minutes")
}
