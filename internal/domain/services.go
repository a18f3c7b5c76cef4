package domain

import (
	"context"
	"time"
)

// ContentResource is the CRUD surface shared by every entity collection.
// Public lists only what visitors may see. Update reports false when no record
// has the given id.
type ContentResource[T any] interface {
	List(ctx context.Context) []*T
	Public(ctx context.Context) []*T
	Get(ctx context.Context, id string) (*T, bool)
	Add(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, item *T) (bool, error)
	Delete(ctx context.Context, id string) bool
}

// CountdownChecker evaluates event countdown thresholds at now.
type CountdownChecker interface {
	CheckEventCountdowns(ctx context.Context, now time.Time) []*Notification
}

// NotificationInbox manages the flat notification list.
type NotificationInbox interface {
	ListNotifications(ctx context.Context, filter NotificationFilter) []*Notification
	MarkNotificationAsRead(ctx context.Context, id string) bool
	MarkAllNotificationsAsRead(ctx context.Context) int
	ArchiveNotification(ctx context.Context, id string) bool
	DeleteNotification(ctx context.Context, id string) bool
	ClearAllNotifications(ctx context.Context)
}

// FormRegistry stores the custom registration form of each event.
type FormRegistry interface {
	GetFormConfig(ctx context.Context, eventID string) []FormField
	SaveFormConfig(ctx context.Context, eventID string, fields []FormField) ([]FormField, error)
	CloneFormConfig(ctx context.Context, sourceID, targetID string) (bool, error)
	ApplyFormTemplate(ctx context.Context, eventID, name string) ([]FormField, error)
}

// SiteService covers the singletons: banner, preferences and article comments.
type SiteService interface {
	BannerConfig(ctx context.Context) BannerConfig
	UpdateBannerConfig(ctx context.Context, b BannerConfig) BannerConfig
	Preferences(ctx context.Context) Preferences
	UpdatePreferences(ctx context.Context, p Preferences) (Preferences, error)
	AddArticleComment(ctx context.Context, articleID string, c Comment) (*Comment, error)
}

// StorageWarnings exposes the warnings raised by the persistence layer.
type StorageWarnings interface {
	Warnings() []StorageWarning
}
