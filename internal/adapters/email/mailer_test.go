package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiveportal/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeSES struct {
	last *ses.SendEmailInput
	err  error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewMailer(t *testing.T) {
	t.Run("noop for empty provider", func(t *testing.T) {
		m, err := NewMailer(MailerConfig{}, testLogger)
		require.NoError(t, err)
		assert.IsType(t, &noopMailer{}, m)
	})
	t.Run("noop for unknown provider", func(t *testing.T) {
		m, err := NewMailer(MailerConfig{Provider: "smtp"}, testLogger)
		require.NoError(t, err)
		assert.IsType(t, &noopMailer{}, m)
	})
	t.Run("ses requires region", func(t *testing.T) {
		_, err := NewMailer(MailerConfig{Provider: "ses", FromAddress: "hive@example.com"}, testLogger)
		require.Error(t, err)
	})
	t.Run("ses requires from address", func(t *testing.T) {
		_, err := NewMailer(MailerConfig{Provider: "ses", SES: SESConfig{Region: "us-east-1"}}, testLogger)
		require.Error(t, err)
	})
	t.Run("ses", func(t *testing.T) {
		m, err := NewMailer(MailerConfig{
			Provider:    "ses",
			FromAddress: "hive@example.com",
			SES:         SESConfig{Region: "us-east-1", AccessKeyID: "id", SecretAccessKey: "secret"},
		}, testLogger)
		require.NoError(t, err)
		assert.IsType(t, &sesMailer{}, m)
	})
}

func TestSESMailerSend(t *testing.T) {
	fake := &fakeSES{}
	m := &sesMailer{client: fake, fromAddress: "hive@example.com", fromName: "The Hive", logger: testLogger}

	require.NoError(t, m.Send(context.Background(), "members@example.com", "Subject", "<p>hi</p>", ""))
	require.NotNil(t, fake.last)
	assert.Equal(t, "The Hive <hive@example.com>", aws.ToString(fake.last.Source))
	assert.Equal(t, []string{"members@example.com"}, fake.last.Destination.ToAddresses)
	assert.Equal(t, "Subject", aws.ToString(fake.last.Message.Subject.Data))
	require.NotNil(t, fake.last.Message.Body.Html)
	assert.Equal(t, "<p>hi</p>", aws.ToString(fake.last.Message.Body.Html.Data))
	assert.Nil(t, fake.last.Message.Body.Text)
}

func TestSESMailerSendError(t *testing.T) {
	sendErr := errors.New("throttled")
	m := &sesMailer{client: &fakeSES{err: sendErr}, fromAddress: "hive@example.com", logger: testLogger}

	err := m.Send(context.Background(), "members@example.com", "Subject", "", "plain")
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}

func TestTemplateRenderer_EventNotification(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.EventNotificationEmailData{
		Title:    "Tomorrow: <Hackathon>",
		Message:  "Reminder: Hackathon starts tomorrow at 09:00.",
		Severity: domain.SeverityImportant,
		EventID:  "evt_1",
	}

	subject, html, text, err := r.Render("event_notification", data)
	require.NoError(t, err)
	assert.Equal(t, "[The Hive] Tomorrow: <Hackathon>", subject)
	assert.Contains(t, html, "Tomorrow: &lt;Hackathon&gt;")
	assert.Contains(t, html, "#d97706")
	assert.NotContains(t, html, "View details")
	assert.Contains(t, text, "Reminder: Hackathon starts tomorrow at 09:00.")
	assert.Contains(t, text, "evt_1")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
}
