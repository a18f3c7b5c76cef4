package services

import (
	"context"
	"fmt"
	"log/slog"

	"hiveportal/internal/domain"
)

type emailNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
	logger   *slog.Logger
}

// NewEmailNotifier returns a NotificationSink that mails event notifications to
// the broadcast address using the "event_notification" template. With an empty
// address it sends nothing.
func NewEmailNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string, logger *slog.Logger) domain.NotificationSink {
	return &emailNotifier{mailer: mailer, renderer: renderer, to: to, logger: logger}
}

func (s *emailNotifier) Publish(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return fmt.Errorf("notification is nil")
	}
	if s.to == "" || n.EventID == "" {
		return nil
	}
	data := &domain.EventNotificationEmailData{
		Title:     n.Title,
		Message:   n.Message,
		Severity:  n.Type,
		EventID:   n.EventID,
		ActionURL: n.ActionURL,
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render event_notification template: %w", err)
	}
	if err := s.mailer.Send(ctx, s.to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	s.logger.InfoContext(ctx, "[EMAIL] notification email sent", "notification_id", n.ID, "event_id", n.EventID)
	return nil
}
