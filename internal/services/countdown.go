package services

import (
	"context"
	"fmt"
	"time"

	"hiveportal/internal/domain"
)

// CheckEventCountdowns emits countdown notifications for published events whose
// start falls inside a threshold band. Only the band the event is currently in
// is considered, so bands that were skipped over are never sent late. Each
// (event, threshold) pair is sent at most once. It returns the new notifications.
func (s *Store) CheckEventCountdowns(ctx context.Context, now time.Time) []*domain.Notification {
	s.mu.Lock()
	var emitted []*domain.Notification
	for _, e := range s.events.items {
		if e.Status != domain.StatusPublished {
			continue
		}
		threshold, ok := countdownBand(e.Datetime.Start.Sub(now))
		if !ok || e.HasSent(threshold) {
			continue
		}
		emitted = append(emitted, countdownNotice(e, threshold, now))
		e.MarkSent(threshold)
	}
	if len(emitted) > 0 {
		s.notifications.items = append(emitted, s.notifications.items...)
		saveCollection(ctx, s, s.notifications)
		saveCollection(ctx, s, s.events)
	}
	out := make([]*domain.Notification, len(emitted))
	for i, n := range emitted {
		out[i] = n.Clone()
	}
	s.mu.Unlock()

	s.publish(ctx, out)
	return out
}

func countdownBand(until time.Duration) (domain.NotificationThreshold, bool) {
	hours := until.Hours()
	switch {
	case hours > 24 && hours <= 72:
		return domain.Threshold72h, true
	case hours > 1 && hours <= 24:
		return domain.Threshold24h, true
	case hours > 0 && hours <= 1:
		return domain.Threshold1h, true
	}
	return "", false
}

func countdownNotice(e *domain.Event, t domain.NotificationThreshold, now time.Time) *domain.Notification {
	n := &domain.Notification{
		ID:        newID("n"),
		Category:  domain.CategoryCommunity,
		Timestamp: now,
		EventID:   e.ID,
	}
	switch t {
	case domain.Threshold72h:
		hint := "Check requirements."
		if e.Type == domain.EventTypeHackathon {
			hint = "Prepare your gear!"
		}
		n.Title = "Upcoming: " + e.Title
		n.Message = fmt.Sprintf("In 3 days: Get ready for %s. %s", e.Title, hint)
		n.Type = domain.SeverityGeneral
	case domain.Threshold24h:
		n.Title = "Tomorrow: " + e.Title
		n.Message = fmt.Sprintf("Reminder: %s starts tomorrow at %s.", e.Title, e.Datetime.Start.Format("15:04"))
		n.Type = domain.SeverityImportant
	case domain.Threshold1h:
		n.Title = "Starting Now: " + e.Title
		n.Message = fmt.Sprintf("Hurry up! Event begins in 1 hour at %s.", e.Location.Name)
		n.Type = domain.SeverityUrgent
	}
	return n
}
