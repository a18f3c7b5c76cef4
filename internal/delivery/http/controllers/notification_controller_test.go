package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hiveportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInbox implements domain.NotificationInbox and domain.CountdownChecker.
type fakeInbox struct {
	items      []*domain.Notification
	lastFilter domain.NotificationFilter
	checkedAt  time.Time
	emit       []*domain.Notification
	cleared    bool
}

func (f *fakeInbox) ListNotifications(ctx context.Context, filter domain.NotificationFilter) []*domain.Notification {
	f.lastFilter = filter
	var out []*domain.Notification
	for _, n := range f.items {
		if filter.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeInbox) find(id string) *domain.Notification {
	for _, n := range f.items {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (f *fakeInbox) MarkNotificationAsRead(ctx context.Context, id string) bool {
	n := f.find(id)
	if n == nil {
		return false
	}
	n.IsRead = true
	return true
}

func (f *fakeInbox) MarkAllNotificationsAsRead(ctx context.Context) int {
	count := 0
	for _, n := range f.items {
		if !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count
}

func (f *fakeInbox) ArchiveNotification(ctx context.Context, id string) bool {
	n := f.find(id)
	if n == nil {
		return false
	}
	n.IsArchived, n.IsRead = true, true
	return true
}

func (f *fakeInbox) DeleteNotification(ctx context.Context, id string) bool {
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeInbox) ClearAllNotifications(ctx context.Context) {
	f.items = nil
	f.cleared = true
}

func (f *fakeInbox) CheckEventCountdowns(ctx context.Context, now time.Time) []*domain.Notification {
	f.checkedAt = now
	return f.emit
}

func newInbox(n int) *fakeInbox {
	f := &fakeInbox{}
	for i := range n {
		f.items = append(f.items, &domain.Notification{ID: fmt.Sprintf("n%d", i), Title: "note", IsArchived: i%2 == 1})
	}
	return f
}

func TestNotificationController_List(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantStatus   int
		wantItems    int
		wantTotal    int
		wantArchived *bool
	}{
		{name: "all", query: "", wantStatus: http.StatusOK, wantItems: 5, wantTotal: 5},
		{name: "archived only", query: "?archived=true", wantStatus: http.StatusOK, wantItems: 2, wantTotal: 2, wantArchived: boolPtr(true)},
		{name: "active only", query: "?archived=false", wantStatus: http.StatusOK, wantItems: 3, wantTotal: 3, wantArchived: boolPtr(false)},
		{name: "second page", query: "?page=2&page_size=2", wantStatus: http.StatusOK, wantItems: 2, wantTotal: 5},
		{name: "bad archived flag", query: "?archived=maybe", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inbox := newInbox(5)
			ctrl := NewNotificationController(testLogger, inbox, inbox)
			rr := httptest.NewRecorder()

			ctrl.List(rr, httptest.NewRequest(http.MethodGet, "/notifications"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				envelope := decodeEnvelope(t, rr, nil)
				assert.Equal(t, "bad_request", envelope.Error.Code)
				return
			}
			var got ListNotificationsResponse
			decodeEnvelope(t, rr, &got)
			assert.Len(t, got.Items, tt.wantItems)
			assert.Equal(t, tt.wantTotal, got.Pagination.Total)
			assert.Equal(t, tt.wantTotal, got.Unread)
			assert.Equal(t, tt.wantArchived, inbox.lastFilter.Archived)
		})
	}
}

func TestNotificationController_Mutations(t *testing.T) {
	inbox := newInbox(3)
	ctrl := NewNotificationController(testLogger, inbox, inbox)

	call := func(h http.HandlerFunc, id string) int {
		req := httptest.NewRequest(http.MethodPost, "/notifications/"+id, nil)
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()
		h(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusNoContent, call(ctrl.MarkRead, "n0"))
	assert.True(t, inbox.items[0].IsRead)
	assert.Equal(t, http.StatusNotFound, call(ctrl.MarkRead, "missing"))

	assert.Equal(t, http.StatusNoContent, call(ctrl.Archive, "n2"))
	assert.True(t, inbox.items[2].IsArchived)
	assert.True(t, inbox.items[2].IsRead)

	rr := httptest.NewRecorder()
	ctrl.MarkAllRead(rr, httptest.NewRequest(http.MethodPost, "/notifications/read-all", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var updated map[string]int
	decodeEnvelope(t, rr, &updated)
	assert.Equal(t, 1, updated["updated"])

	assert.Equal(t, http.StatusNoContent, call(ctrl.Delete, "n1"))
	assert.Len(t, inbox.items, 2)
	assert.Equal(t, http.StatusNotFound, call(ctrl.Delete, "n1"))

	rr = httptest.NewRecorder()
	ctrl.Clear(rr, httptest.NewRequest(http.MethodDelete, "/notifications", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, inbox.cleared)
}

func TestNotificationController_RunCountdownCheck(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("returns emitted notifications", func(t *testing.T) {
		inbox := &fakeInbox{emit: []*domain.Notification{{ID: "notif_1", EventID: "ev-1", Type: domain.SeverityImportant}}}
		ctrl := NewNotificationController(testLogger, inbox, inbox)
		ctrl.Now = func() time.Time { return now }
		rr := httptest.NewRecorder()

		ctrl.RunCountdownCheck(rr, httptest.NewRequest(http.MethodPost, "/admin/notifications/check", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got []domain.Notification
		decodeEnvelope(t, rr, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "ev-1", got[0].EventID)
		assert.Equal(t, now, inbox.checkedAt)
	})

	t.Run("nothing due is an empty list", func(t *testing.T) {
		inbox := &fakeInbox{}
		ctrl := NewNotificationController(testLogger, inbox, inbox)
		rr := httptest.NewRecorder()

		ctrl.RunCountdownCheck(rr, httptest.NewRequest(http.MethodPost, "/admin/notifications/check", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})
}

func boolPtr(b bool) *bool { return &b }
