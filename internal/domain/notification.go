package domain

import (
	"context"
	"time"
)

// NotificationSeverity drives how prominently a notification is shown.
type NotificationSeverity string

const (
	SeverityUrgent    NotificationSeverity = "urgent"
	SeverityImportant NotificationSeverity = "important"
	SeverityGeneral   NotificationSeverity = "general"
)

// NotificationCategory groups notifications in the inbox.
type NotificationCategory string

const (
	CategorySystem    NotificationCategory = "system"
	CategoryCommunity NotificationCategory = "community"
	CategoryPersonal  NotificationCategory = "personal"
)

// Notification is an inbox entry. Type holds the severity.
type Notification struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Message    string               `json:"message"`
	Type       NotificationSeverity `json:"type"`
	Category   NotificationCategory `json:"category"`
	Timestamp  time.Time            `json:"timestamp"`
	ActionURL  string               `json:"actionUrl,omitempty"`
	EventID    string               `json:"eventId,omitempty"`
	IsRead     bool                 `json:"isRead"`
	IsArchived bool                 `json:"isArchived"`
}

// Clone returns a copy.
func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	out := *n
	return &out
}

// NotificationSink receives notifications emitted by the store, e.g. a websocket
// feed or an email broadcaster. Errors are logged by the caller and never affect state.
type NotificationSink interface {
	Publish(ctx context.Context, n *Notification) error
}

// NotificationFilter narrows ListNotifications. A nil Archived matches both.
type NotificationFilter struct {
	Archived *bool
}

// Matches reports whether n passes the filter.
func (f NotificationFilter) Matches(n *Notification) bool {
	return f.Archived == nil || *f.Archived == n.IsArchived
}
