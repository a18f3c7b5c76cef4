package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiveportal/internal/domain"
)

func TestCheckEventCountdowns_Bands(t *testing.T) {
	tests := []struct {
		name      string
		until     time.Duration
		want      domain.NotificationThreshold
		severity  domain.NotificationSeverity
		wantTitle string
	}{
		{"beyond 72h", 73 * time.Hour, "", "", ""},
		{"exactly 72h", 72 * time.Hour, domain.Threshold72h, domain.SeverityGeneral, "Upcoming: Hive Hackathon"},
		{"just over 24h", 24*time.Hour + time.Minute, domain.Threshold72h, domain.SeverityGeneral, "Upcoming: Hive Hackathon"},
		{"exactly 24h", 24 * time.Hour, domain.Threshold24h, domain.SeverityImportant, "Tomorrow: Hive Hackathon"},
		{"30 hours is in the 72h band", 30 * time.Hour, domain.Threshold72h, domain.SeverityGeneral, "Upcoming: Hive Hackathon"},
		{"2 hours", 2 * time.Hour, domain.Threshold24h, domain.SeverityImportant, "Tomorrow: Hive Hackathon"},
		{"exactly 1h", time.Hour, domain.Threshold1h, domain.SeverityUrgent, "Starting Now: Hive Hackathon"},
		{"10 minutes", 10 * time.Minute, domain.Threshold1h, domain.SeverityUrgent, "Starting Now: Hive Hackathon"},
		{"started", 0, "", "", ""},
		{"in the past", -time.Hour, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newTestStore(t, &domain.Dataset{Events: []*domain.Event{testEvent("evt_1", domain.StatusPublished, testNow.Add(tt.until))}})

			emitted := s.CheckEventCountdowns(ctx, testNow)
			got, _ := s.GetEvent(ctx, "evt_1")
			if tt.want == "" {
				assert.Empty(t, emitted)
				assert.Empty(t, got.SentNotifications)
				return
			}
			require.Len(t, emitted, 1)
			assert.Equal(t, tt.severity, emitted[0].Type)
			assert.Equal(t, tt.wantTitle, emitted[0].Title)
			assert.Equal(t, domain.CategoryCommunity, emitted[0].Category)
			assert.Equal(t, "evt_1", emitted[0].EventID)
			assert.Equal(t, []domain.NotificationThreshold{tt.want}, got.SentNotifications)
		})
	}
}

func TestCheckEventCountdowns_OncePerThreshold(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, &domain.Dataset{Events: []*domain.Event{testEvent("evt_1", domain.StatusPublished, testNow.Add(20*time.Hour))}})
	sink := &recordingSink{}
	s.AddSink(sink)

	first := s.CheckEventCountdowns(ctx, testNow)
	require.Len(t, first, 1)
	assert.Equal(t, domain.SeverityImportant, first[0].Type)
	assert.Equal(t, "Reminder: Hive Hackathon starts tomorrow at 05:00.", first[0].Message)

	second := s.CheckEventCountdowns(ctx, testNow.Add(time.Minute))
	assert.Empty(t, second)

	notes := s.ListNotifications(ctx, domain.NotificationFilter{})
	require.Len(t, notes, 1)
	require.Len(t, sink.notifications(), 1)

	stored := readKey[[]domain.Event](t, kv, domain.KeyEvents)
	assert.Equal(t, []domain.NotificationThreshold{domain.Threshold24h}, stored[0].SentNotifications)

	// Clearing the inbox does not make the threshold fire again.
	s.ClearAllNotifications(ctx)
	assert.Empty(t, s.CheckEventCountdowns(ctx, testNow.Add(2*time.Minute)))

	// The next band still fires once.
	final := s.CheckEventCountdowns(ctx, testNow.Add(19*time.Hour+30*time.Minute))
	require.Len(t, final, 1)
	assert.Equal(t, "Hurry up! Event begins in 1 hour at Innovation Lab.", final[0].Message)
	got, _ := s.GetEvent(ctx, "evt_1")
	assert.Equal(t, []domain.NotificationThreshold{domain.Threshold24h, domain.Threshold1h}, got.SentNotifications)
}

func TestCheckEventCountdowns_SkippedBandsStaySkipped(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, &domain.Dataset{Events: []*domain.Event{testEvent("evt_1", domain.StatusPublished, testNow.Add(30*time.Minute))}})

	emitted := s.CheckEventCountdowns(ctx, testNow)
	require.Len(t, emitted, 1)
	assert.Equal(t, domain.SeverityUrgent, emitted[0].Type)

	got, _ := s.GetEvent(ctx, "evt_1")
	assert.Equal(t, []domain.NotificationThreshold{domain.Threshold1h}, got.SentNotifications)
}

func TestCheckEventCountdowns_OnlyPublished(t *testing.T) {
	ctx := context.Background()
	start := testNow.Add(2 * time.Hour)
	s, _ := newTestStore(t, &domain.Dataset{Events: []*domain.Event{
		testEvent("draft", domain.StatusDraft, start),
		testEvent("approval", domain.StatusApproval, start),
		testEvent("cancelled", domain.StatusCancelled, start),
		testEvent("completed", domain.StatusCompleted, start),
	}})

	assert.Empty(t, s.CheckEventCountdowns(ctx, testNow))
	assert.Empty(t, s.ListNotifications(ctx, domain.NotificationFilter{}))
}

func TestCheckEventCountdowns_MessagesByType(t *testing.T) {
	ctx := context.Background()
	workshop := testEvent("evt_w", domain.StatusPublished, testNow.Add(48*time.Hour))
	workshop.Type = domain.EventTypeWorkshop
	workshop.Title = "Git Workshop"
	hackathon := testEvent("evt_h", domain.StatusPublished, testNow.Add(48*time.Hour))
	s, _ := newTestStore(t, &domain.Dataset{Events: []*domain.Event{hackathon, workshop}})

	emitted := s.CheckEventCountdowns(ctx, testNow)
	require.Len(t, emitted, 2)
	assert.Equal(t, "In 3 days: Get ready for Hive Hackathon. Prepare your gear!", emitted[0].Message)
	assert.Equal(t, "In 3 days: Get ready for Git Workshop. Check requirements.", emitted[1].Message)

	// New notifications go to the head of the inbox in event order.
	notes := s.ListNotifications(ctx, domain.NotificationFilter{})
	require.Len(t, notes, 2)
	assert.Equal(t, "evt_h", notes[0].EventID)
}

type countingChecker struct {
	calls atomic.Int32
}

func (c *countingChecker) CheckEventCountdowns(context.Context, time.Time) []*domain.Notification {
	c.calls.Add(1)
	return nil
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	checker := &countingChecker{}
	sched := NewScheduler(checker, 10*time.Millisecond, testLogger)

	sched.Start(context.Background())
	sched.Start(context.Background())
	require.Eventually(t, func() bool { return checker.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	sched.Stop()

	calls := checker.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, checker.calls.Load())

	// Stop on a stopped scheduler is a no-op.
	sched.Stop()
}

func TestScheduler_RunOnceAgainstStore_30hIs72hBand(t *testing.T) {
	s, _ := newTestStore(t, &domain.Dataset{Events: []*domain.Event{testEvent("evt_1", domain.StatusPublished, testNow.Add(30*time.Hour))}})
	sched := NewScheduler(s, 0, testLogger)
	sched.now = func() time.Time { return testNow }
	assert.Equal(t, DefaultCheckInterval, sched.interval)

	first := sched.RunOnce(context.Background())
	require.Len(t, first, 1)
	assert.Equal(t, domain.SeverityGeneral, first[0].Type)
	assert.Empty(t, sched.RunOnce(context.Background()))
}
