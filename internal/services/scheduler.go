package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hiveportal/internal/domain"
)

// DefaultCheckInterval is how often the scheduler re-evaluates event countdowns.
const DefaultCheckInterval = time.Minute

// Scheduler runs countdown checks in the background: once on Start and then
// every interval until Stop.
type Scheduler struct {
	checker  domain.CountdownChecker
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(checker domain.CountdownChecker, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Scheduler{
		checker:  checker,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the check loop. Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	s.logger.Info("notification scheduler started", "interval", s.interval.String())
}

// Stop ends the loop and waits for an in-flight check to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("notification scheduler stopped")
}

// RunOnce performs a single check at the current time.
func (s *Scheduler) RunOnce(ctx context.Context) []*domain.Notification {
	emitted := s.checker.CheckEventCountdowns(ctx, s.now())
	if len(emitted) > 0 {
		s.logger.InfoContext(ctx, "countdown notifications emitted", "count", len(emitted))
	}
	return emitted
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
