package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"hiveportal/internal/domain"
)

// ListEvents returns every event, newest first.
func (s *Store) ListEvents(ctx context.Context) []*domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.list(nil)
}

// ListPublicEvents returns published, completed and cancelled events.
func (s *Store) ListPublicEvents(ctx context.Context) []*domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.list((*domain.Event).IsPubliclyVisible)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*domain.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.get(id)
}

// AddEvent stores a new event at the head of the list. The initial status is
// treated as a move out of draft, so only draft or verification are accepted.
// The notification ledger always starts empty.
func (s *Store) AddEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.events.add(e)
	if err != nil {
		return nil, err
	}
	stored.SentNotifications = []domain.NotificationThreshold{}
	saveCollection(ctx, s, s.events)
	return stored.Clone(), nil
}

// UpdateEvent replaces the event with e.ID. It reports false when no such
// event exists. The stored notification ledger replaces whatever e carries,
// and a move into cancelled emits one urgent notification.
func (s *Store) UpdateEvent(ctx context.Context, e *domain.Event) (bool, error) {
	s.mu.Lock()
	prev, stored, err := s.events.update(e, func(prev, next *domain.Event) {
		next.SentNotifications = slices.Clone(prev.SentNotifications)
		if next.SentNotifications == nil {
			next.SentNotifications = []domain.NotificationThreshold{}
		}
	})
	if err != nil || stored == nil {
		s.mu.Unlock()
		return false, err
	}

	var emitted []*domain.Notification
	if stored.Status == domain.StatusCancelled && prev.Status != domain.StatusCancelled && !stored.HasSent(domain.ThresholdCancelled) {
		n := cancellationNotice(stored, s.now())
		stored.MarkSent(domain.ThresholdCancelled)
		s.notifications.items = append([]*domain.Notification{n}, s.notifications.items...)
		emitted = append(emitted, n.Clone())
		saveCollection(ctx, s, s.notifications)
	}
	saveCollection(ctx, s, s.events)
	s.mu.Unlock()

	s.publish(ctx, emitted)
	return true, nil
}

// DeleteEvent removes the event. Its form config, if any, is left in place.
func (s *Store) DeleteEvent(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.events.remove(id) {
		return false
	}
	saveCollection(ctx, s, s.events)
	return true
}

func cancellationNotice(e *domain.Event, now time.Time) *domain.Notification {
	return &domain.Notification{
		ID:        newID("n"),
		Title:     fmt.Sprintf("CANCELLED: %s", e.Title),
		Message:   fmt.Sprintf("ALERT: %s has been cancelled. Please check your email for further details regarding refunds or rescheduling.", e.Title),
		Type:      domain.SeverityUrgent,
		Category:  domain.CategoryCommunity,
		Timestamp: now,
		EventID:   e.ID,
	}
}
