package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hiveportal/internal/delivery/http/helpers"
	"hiveportal/internal/domain"
)

type NotificationController struct {
	Logger  *slog.Logger
	Inbox   domain.NotificationInbox
	Checker domain.CountdownChecker
	Now     func() time.Time
}

func NewNotificationController(logger *slog.Logger, inbox domain.NotificationInbox, checker domain.CountdownChecker) *NotificationController {
	return &NotificationController{Logger: logger, Inbox: inbox, Checker: checker, Now: time.Now}
}

// ListNotificationsResponse is the data of GET /notifications.
type ListNotificationsResponse struct {
	Items      []*domain.Notification `json:"items"`
	Unread     int                    `json:"unread"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListNotificationsSuccessResponse is the success response envelope for GET /notifications (200).
type ListNotificationsSuccessResponse struct {
	Data  ListNotificationsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// List godoc
// @Summary List notifications
// @Description Newest first. archived=true or archived=false narrows the list; omit it for both.
// @Tags notifications
// @Produce json
// @Param archived query bool false "Filter on the archived flag"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListNotificationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /notifications [get]
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.NotificationFilter
	if s := r.URL.Query().Get("archived"); s != "" {
		archived, err := strconv.ParseBool(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "archived must be true or false")
			return
		}
		filter.Archived = &archived
	}
	all := c.Inbox.ListNotifications(r.Context(), filter)
	unread := 0
	for _, n := range all {
		if !n.IsRead {
			unread++
		}
	}
	params := helpers.ParsePagination(r)
	page, total := helpers.Paginate(all, params)
	if page == nil {
		page = []*domain.Notification{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListNotificationsResponse{
		Items:      page,
		Unread:     unread,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	c.touch(w, r, c.Inbox.MarkNotificationAsRead)
}

// Archive godoc
// @Summary Archive a notification
// @Description Archiving also marks the notification read.
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /notifications/{id}/archive [post]
func (c *NotificationController) Archive(w http.ResponseWriter, r *http.Request) {
	c.touch(w, r, c.Inbox.ArchiveNotification)
}

// Delete godoc
// @Summary Delete a notification
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /notifications/{id} [delete]
func (c *NotificationController) Delete(w http.ResponseWriter, r *http.Request) {
	c.touch(w, r, c.Inbox.DeleteNotification)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.updated is the number of notifications changed"
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n := c.Inbox.MarkAllNotificationsAsRead(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]int{"updated": n})
}

// Clear godoc
// @Summary Delete every notification
// @Tags notifications
// @Success 204
// @Router /notifications [delete]
func (c *NotificationController) Clear(w http.ResponseWriter, r *http.Request) {
	c.Inbox.ClearAllNotifications(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// RunCountdownCheck godoc
// @Summary Run the countdown check now
// @Description Evaluates every published event against the 72h, 24h and 1h thresholds outside the regular schedule.
// @Tags admin
// @Produce json
// @Security AdminPassphrase
// @Success 200 {object} helpers.APIResponse "data is the list of notifications emitted"
// @Router /admin/notifications/check [post]
func (c *NotificationController) RunCountdownCheck(w http.ResponseWriter, r *http.Request) {
	emitted := c.Checker.CheckEventCountdowns(r.Context(), c.Now())
	if emitted == nil {
		emitted = []*domain.Notification{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, emitted)
}

func (c *NotificationController) touch(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) bool) {
	if !fn(r.Context(), r.PathValue("id")) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
