package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"hiveportal/internal/domain"
)

// Store is the in-memory content store. Every mutation and every countdown
// check runs under one mutex and ends by saving the affected keys. A failed
// save never rolls back memory; the persister reports it.
type Store struct {
	mu             sync.Mutex
	persister      domain.Persister
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
	sinks          []domain.NotificationSink

	events        *collection[domain.Event]
	members       *collection[domain.Member]
	articles      *collection[domain.Article]
	minutes       *collection[domain.MeetingMinute]
	milestones    *collection[domain.TimelineMilestone]
	yearbooks     *collection[domain.Yearbook]
	training      *collection[domain.TrainingDoc]
	albums        *collection[domain.GalleryAlbum]
	notifications *collection[domain.Notification]
	banner        domain.BannerConfig
	forms         []domain.EventFormConfig
	prefs         domain.Preferences
}

// NewStore hydrates a store from persister. Keys that are absent or unreadable
// fall back to defaults, which are then saved.
func NewStore(ctx context.Context, persister domain.Persister, defaults *domain.Dataset, logger *slog.Logger, timeout time.Duration) *Store {
	s := newStore(persister, logger, timeout)
	if defaults == nil {
		defaults = &domain.Dataset{}
	}
	s.hydrate(ctx, defaults)
	return s
}

func newStore(persister domain.Persister, logger *slog.Logger, timeout time.Duration) *Store {
	s := &Store{
		persister:      persister,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
		prefs:          domain.Preferences{Settings: domain.DefaultAppSettings()},
	}
	s.events = &collection[domain.Event]{
		key: domain.KeyEvents, noun: "event", prefix: "evt", prepend: true,
		id:     func(e *domain.Event) *string { return &e.ID },
		clone:  (*domain.Event).Clone,
		status: func(e *domain.Event) *domain.ContentStatus { return &e.Status },
		rule:   domain.ValidateEventTransition,
		clean:  sanitizeEvent,
	}
	s.members = &collection[domain.Member]{
		key: domain.KeyTeam, noun: "member", prefix: "mem",
		id:     func(m *domain.Member) *string { return &m.ID },
		clone:  (*domain.Member).Clone,
		status: func(m *domain.Member) *domain.ContentStatus { return &m.Status },
		rule:   domain.ValidateContentTransition,
		clean:  sanitizeMember,
	}
	s.articles = &collection[domain.Article]{
		key: domain.KeyArticles, noun: "article", prefix: "art", prepend: true,
		id:     func(a *domain.Article) *string { return &a.ID },
		clone:  (*domain.Article).Clone,
		status: func(a *domain.Article) *domain.ContentStatus { return &a.Status },
		rule:   domain.ValidateContentTransition,
		clean:  sanitizeArticle,
	}
	s.minutes = &collection[domain.MeetingMinute]{
		key: domain.KeyMinutes, noun: "meeting minute", prefix: "mm", prepend: true,
		id:     func(m *domain.MeetingMinute) *string { return &m.ID },
		clone:  (*domain.MeetingMinute).Clone,
		status: func(m *domain.MeetingMinute) *domain.ContentStatus { return &m.Status },
		rule:   domain.ValidateContentTransition,
		clean:  sanitizeMinute,
	}
	s.milestones = &collection[domain.TimelineMilestone]{
		key: domain.KeyMilestones, noun: "milestone", prefix: "ms",
		id:    func(m *domain.TimelineMilestone) *string { return &m.ID },
		clone: (*domain.TimelineMilestone).Clone,
		clean: sanitizeMilestone,
		order: sortMilestones,
	}
	s.yearbooks = &collection[domain.Yearbook]{
		key: domain.KeyYearbooks, noun: "yearbook", prefix: "yb", prepend: true,
		id:     func(y *domain.Yearbook) *string { return &y.ID },
		clone:  (*domain.Yearbook).Clone,
		status: func(y *domain.Yearbook) *domain.ContentStatus { return &y.Status },
		rule:   domain.ValidateContentTransition,
		clean:  sanitizeYearbook,
	}
	s.training = &collection[domain.TrainingDoc]{
		key: domain.KeyTraining, noun: "training doc", prefix: "tr", prepend: true,
		id:     func(d *domain.TrainingDoc) *string { return &d.ID },
		clone:  (*domain.TrainingDoc).Clone,
		status: func(d *domain.TrainingDoc) *domain.ContentStatus { return &d.Status },
		rule:   domain.ValidateContentTransition,
		clean:  sanitizeTrainingDoc,
	}
	s.albums = &collection[domain.GalleryAlbum]{
		key: domain.KeyAlbums, noun: "album", prefix: "alb", prepend: true,
		id:    func(a *domain.GalleryAlbum) *string { return &a.AlbumID },
		clone: (*domain.GalleryAlbum).Clone,
		clean: sanitizeAlbum,
	}
	s.notifications = &collection[domain.Notification]{
		key: domain.KeyNotifications, noun: "notification", prefix: "n",
		id:    func(n *domain.Notification) *string { return &n.ID },
		clone: (*domain.Notification).Clone,
	}
	return s
}

// AddSink registers sinks that receive every notification the store emits.
func (s *Store) AddSink(sinks ...domain.NotificationSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sinks...)
}

func (s *Store) hydrate(ctx context.Context, ds *domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hydrateCollection(ctx, s, s.events, ds.Events)
	hydrateCollection(ctx, s, s.members, ds.Members)
	hydrateCollection(ctx, s, s.articles, ds.Articles)
	hydrateCollection(ctx, s, s.minutes, ds.Minutes)
	hydrateCollection(ctx, s, s.milestones, ds.Milestones)
	hydrateCollection(ctx, s, s.yearbooks, ds.Yearbooks)
	hydrateCollection(ctx, s, s.training, ds.Training)
	hydrateCollection(ctx, s, s.albums, ds.Albums)
	hydrateCollection(ctx, s, s.notifications, ds.Notifications)

	// Records saved before the pipeline existed carry no status.
	for _, e := range s.events.items {
		if e.Status == "" {
			e.Status = domain.StatusPublished
		}
	}
	for _, m := range s.members.items {
		if m.Status == "" {
			m.Status = domain.StatusPublished
		}
	}
	for _, a := range s.articles.items {
		if a.Status == "" {
			a.Status = domain.StatusPublished
		}
	}
	now := s.now()
	for _, n := range s.notifications.items {
		if n.Timestamp.IsZero() {
			n.Timestamp = now
		}
	}

	s.banner = *ds.Banner.Clone()
	s.load(ctx, domain.KeyBannerConfig, &s.banner, s.banner)

	s.forms = make([]domain.EventFormConfig, 0, len(ds.FormConfigs))
	for _, fc := range ds.FormConfigs {
		s.forms = append(s.forms, domain.EventFormConfig{EventID: fc.EventID, Fields: domain.CloneFields(fc.Fields)})
	}
	s.load(ctx, domain.KeyFormConfigs, &s.forms, s.forms)

	if _, err := s.persister.Load(ctx, domain.KeySettings, &s.prefs.Settings); err != nil {
		s.logger.WarnContext(ctx, "could not read settings, using defaults", "err", err)
	}
	if _, err := s.persister.Load(ctx, domain.KeyAgreement, &s.prefs.AgreementAccepted); err != nil {
		s.logger.WarnContext(ctx, "could not read agreement flag", "err", err)
	}
}

// load reads key into dest. When nothing usable is stored, fallback is saved
// so the next start reads it back.
func (s *Store) load(ctx context.Context, key string, dest any, fallback any) {
	found, err := s.persister.Load(ctx, key, dest)
	if err != nil {
		s.logger.WarnContext(ctx, "could not read stored data, using defaults", "key", key, "err", err)
		return
	}
	if !found {
		s.save(ctx, key, fallback)
	}
}

func hydrateCollection[T any](ctx context.Context, s *Store, c *collection[T], defaults []*T) {
	var loaded []*T
	found, err := s.persister.Load(ctx, c.key, &loaded)
	if err == nil && found {
		c.replaceAll(loaded)
		return
	}
	seeded := make([]*T, 0, len(defaults))
	for _, item := range defaults {
		if item != nil {
			seeded = append(seeded, c.clone(item))
		}
	}
	c.replaceAll(seeded)
	if err != nil {
		s.logger.WarnContext(ctx, "could not read stored collection, using defaults", "key", c.key, "err", err)
		return
	}
	s.save(ctx, c.key, c.items)
}

// save writes value under key. Errors are reported by the persister and
// otherwise ignored; memory stays authoritative.
func (s *Store) save(ctx context.Context, key string, value any) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	_ = s.persister.Save(ctx, key, value)
}

func saveCollection[T any](ctx context.Context, s *Store, c *collection[T]) {
	s.save(ctx, c.key, c.items)
}

// publish hands notifications to every sink. Call without holding s.mu.
func (s *Store) publish(ctx context.Context, notes []*domain.Notification) {
	if len(notes) == 0 {
		return
	}
	s.mu.Lock()
	sinks := slices.Clone(s.sinks)
	s.mu.Unlock()
	for _, sink := range sinks {
		for _, n := range notes {
			if err := sink.Publish(ctx, n.Clone()); err != nil {
				s.logger.WarnContext(ctx, "notification sink failed", "notification_id", n.ID, "err", err)
			}
		}
	}
}

func sortMilestones(items []*domain.TimelineMilestone) {
	slices.SortStableFunc(items, func(a, b *domain.TimelineMilestone) int {
		return cmp.Compare(a.Year, b.Year)
	})
}
