package http

import (
	"log/slog"
	"net/http"

	"hiveportal/internal/delivery/http/controllers"
	"hiveportal/internal/domain"
	"hiveportal/internal/services"
)

// NewControllers builds the controller set over store. realtime may be nil.
func NewControllers(logger *slog.Logger, store *services.Store, warnings domain.StorageWarnings, adminPassphrase string, realtime http.HandlerFunc) Controllers {
	return Controllers{
		Events: controllers.NewResourceController(logger, store.Events(), "event",
			func(e *domain.Event) *string { return &e.ID }, (*domain.Event).IsPubliclyVisible),
		Team: controllers.NewResourceController(logger, store.Members(), "member",
			func(m *domain.Member) *string { return &m.ID },
			func(m *domain.Member) bool { return m.Status == domain.StatusPublished }),
		Articles: controllers.NewResourceController(logger, store.Articles(), "article",
			func(a *domain.Article) *string { return &a.ID },
			func(a *domain.Article) bool { return a.Status == domain.StatusPublished }),
		Minutes: controllers.NewResourceController(logger, store.Minutes(), "minute",
			func(m *domain.MeetingMinute) *string { return &m.ID },
			func(m *domain.MeetingMinute) bool { return m.Status == domain.StatusPublished }),
		Yearbooks: controllers.NewResourceController(logger, store.Yearbooks(), "yearbook",
			func(y *domain.Yearbook) *string { return &y.ID },
			func(y *domain.Yearbook) bool { return y.Status == domain.StatusPublished }),
		Training: controllers.NewResourceController(logger, store.TrainingDocs(), "training doc",
			func(d *domain.TrainingDoc) *string { return &d.ID },
			func(d *domain.TrainingDoc) bool { return d.Status == domain.StatusPublished }),
		Milestones: controllers.NewResourceController(logger, store.Milestones(), "milestone",
			func(m *domain.TimelineMilestone) *string { return &m.ID }, nil),
		Albums: controllers.NewResourceController(logger, store.Albums(), "album",
			func(a *domain.GalleryAlbum) *string { return &a.AlbumID }, nil),
		Notifications: controllers.NewNotificationController(logger, store, store),
		Forms:         controllers.NewFormController(logger, store, services.FormTemplates),
		Site:          controllers.NewSiteController(logger, store, warnings, adminPassphrase),
		Realtime:      realtime,
	}
}
