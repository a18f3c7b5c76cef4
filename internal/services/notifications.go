package services

import (
	"context"

	"hiveportal/internal/domain"
)

// ListNotifications returns notifications newest first.
func (s *Store) ListNotifications(ctx context.Context, filter domain.NotificationFilter) []*domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications.list(filter.Matches)
}

func (s *Store) MarkNotificationAsRead(ctx context.Context, id string) bool {
	return s.touchNotification(ctx, id, func(n *domain.Notification) { n.IsRead = true })
}

// ArchiveNotification archives n and marks it read.
func (s *Store) ArchiveNotification(ctx context.Context, id string) bool {
	return s.touchNotification(ctx, id, func(n *domain.Notification) {
		n.IsArchived = true
		n.IsRead = true
	})
}

func (s *Store) touchNotification(ctx context.Context, id string, fn func(*domain.Notification)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.notifications.index(id)
	if i < 0 {
		return false
	}
	fn(s.notifications.items[i])
	saveCollection(ctx, s, s.notifications)
	return true
}

// MarkAllNotificationsAsRead returns how many notifications changed.
func (s *Store) MarkAllNotificationsAsRead(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, n := range s.notifications.items {
		if !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	if changed > 0 {
		saveCollection(ctx, s, s.notifications)
	}
	return changed
}

func (s *Store) DeleteNotification(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.notifications.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.notifications)
	return true
}

// ClearAllNotifications empties the inbox. Event ledgers are untouched, so
// thresholds already sent are not sent again.
func (s *Store) ClearAllNotifications(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications.replaceAll(nil)
	saveCollection(ctx, s, s.notifications)
}
