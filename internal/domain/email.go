package domain

import "context"

// Mailer sends a single email. Either html or text may be empty.
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders subject, HTML and text bodies for a named template.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventNotificationEmailData is the data for the "event_notification" template.
type EventNotificationEmailData struct {
	Title     string
	Message   string
	Severity  NotificationSeverity
	EventID   string
	ActionURL string
}
