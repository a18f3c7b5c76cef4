package http

import (
	"net/http"

	"hiveportal/internal/delivery/http/controllers"
	"hiveportal/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Events        *controllers.ResourceController[domain.Event]
	Team          *controllers.ResourceController[domain.Member]
	Articles      *controllers.ResourceController[domain.Article]
	Minutes       *controllers.ResourceController[domain.MeetingMinute]
	Yearbooks     *controllers.ResourceController[domain.Yearbook]
	Training      *controllers.ResourceController[domain.TrainingDoc]
	Milestones    *controllers.ResourceController[domain.TimelineMilestone]
	Albums        *controllers.ResourceController[domain.GalleryAlbum]
	Notifications *controllers.NotificationController
	Forms         *controllers.FormController
	Site          *controllers.SiteController
	// Realtime serves GET /ws. Nil leaves the route unmounted.
	Realtime http.HandlerFunc
}

// NewRouter initializes the HTTP router with all application routes.
// admin wraps every /admin route except the unlock check.
func NewRouter(c Controllers, admin func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Content
	mountResource(mux, admin, "events", c.Events, true)
	mountResource(mux, admin, "team", c.Team, true)
	mountResource(mux, admin, "articles", c.Articles, true)
	mountResource(mux, admin, "minutes", c.Minutes, true)
	mountResource(mux, admin, "yearbooks", c.Yearbooks, true)
	mountResource(mux, admin, "training", c.Training, true)
	mountResource(mux, admin, "milestones", c.Milestones, true)
	mountResource(mux, admin, "albums", c.Albums, false)
	mux.HandleFunc("POST /articles/{id}/comments", c.Site.AddComment)

	// Forms
	mux.HandleFunc("GET /events/{id}/form", c.Forms.Get)
	mux.HandleFunc("PUT /admin/events/{id}/form", admin(c.Forms.Save))
	mux.HandleFunc("POST /admin/events/{id}/form/clone", admin(c.Forms.Clone))
	mux.HandleFunc("POST /admin/events/{id}/form/templates/{name}", admin(c.Forms.ApplyTemplate))
	mux.HandleFunc("GET /admin/form-templates", admin(c.Forms.ListTemplates))

	// Notifications
	mux.HandleFunc("GET /notifications", c.Notifications.List)
	mux.HandleFunc("DELETE /notifications", c.Notifications.Clear)
	mux.HandleFunc("POST /notifications/read-all", c.Notifications.MarkAllRead)
	mux.HandleFunc("POST /notifications/{id}/read", c.Notifications.MarkRead)
	mux.HandleFunc("POST /notifications/{id}/archive", c.Notifications.Archive)
	mux.HandleFunc("DELETE /notifications/{id}", c.Notifications.Delete)
	mux.HandleFunc("POST /admin/notifications/check", admin(c.Notifications.RunCountdownCheck))

	// Site
	mux.HandleFunc("GET /banner", c.Site.Banner)
	mux.HandleFunc("PUT /admin/banner", admin(c.Site.UpdateBanner))
	mux.HandleFunc("GET /preferences", c.Site.Preferences)
	mux.HandleFunc("PUT /preferences", c.Site.UpdatePreferences)
	mux.HandleFunc("GET /storage/warnings", c.Site.StorageWarnings)
	mux.HandleFunc("POST /admin/unlock", c.Site.Unlock)

	if c.Realtime != nil {
		mux.HandleFunc("GET /ws", c.Realtime)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func mountResource[T any](mux *http.ServeMux, admin func(http.HandlerFunc) http.HandlerFunc, kind string, rc *controllers.ResourceController[T], editable bool) {
	mux.HandleFunc("GET /"+kind, rc.ListPublic)
	mux.HandleFunc("GET /"+kind+"/{id}", rc.GetPublic)
	mux.HandleFunc("GET /admin/"+kind, admin(rc.List))
	mux.HandleFunc("POST /admin/"+kind, admin(rc.Create))
	mux.HandleFunc("GET /admin/"+kind+"/{id}", admin(rc.Get))
	mux.HandleFunc("DELETE /admin/"+kind+"/{id}", admin(rc.Delete))
	if editable {
		mux.HandleFunc("PUT /admin/"+kind+"/{id}", admin(rc.Update))
	}
}
