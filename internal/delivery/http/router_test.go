package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hiveportal/internal/adapters/storage"
	"hiveportal/internal/delivery/http/helpers"
	"hiveportal/internal/delivery/http/middleware"
	"hiveportal/internal/domain"
	"hiveportal/internal/repository/memory"
	"hiveportal/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testPassphrase = "hive-admin"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	adapter := storage.NewAdapter(memory.NewKVStore(0), testLogger)
	store := services.NewStore(context.Background(), adapter, &domain.Dataset{}, testLogger, time.Second)
	mux := NewRouter(NewControllers(testLogger, store, adapter, testPassphrase, nil), middleware.RequireAdmin(testPassphrase))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, admin bool) (int, helpers.APIResponse) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	if admin {
		req.Header.Set(middleware.AdminPassphraseHeader, testPassphrase)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var envelope helpers.APIResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(bytes.TrimSpace(raw)) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &envelope))
	}
	return resp.StatusCode, envelope
}

func dataAs[T any](t *testing.T, envelope helpers.APIResponse) T {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func eventBody(status domain.ContentStatus) string {
	return `{"title":"Spring Hackathon","type":"hackathon","capacity":40,"status":"` + string(status) + `",
"datetime":{"start":"2030-04-01T09:00:00Z","end":"2030-04-01T18:00:00Z"},"location":{"name":"Lab 3"}}`
}

func TestRouter_AdminGate(t *testing.T) {
	srv := newTestServer(t)

	code, envelope := do(t, srv, http.MethodGet, "/admin/events", "", false)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized", envelope.Error.Code)

	code, _ = do(t, srv, http.MethodGet, "/admin/events", "", true)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, srv, http.MethodPost, "/admin/unlock", `{"passphrase":"`+testPassphrase+`"}`, false)
	assert.Equal(t, http.StatusNoContent, code, "unlock is reachable without the header")

	code, _ = do(t, srv, http.MethodPost, "/admin/unlock", `{"passphrase":"nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_EventPipeline(t *testing.T) {
	srv := newTestServer(t)

	code, envelope := do(t, srv, http.MethodPost, "/admin/events", eventBody(""), true)
	require.Equal(t, http.StatusCreated, code)
	created := dataAs[domain.Event](t, envelope)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusDraft, created.Status)

	code, envelope = do(t, srv, http.MethodGet, "/events", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, dataAs[[]domain.Event](t, envelope), "drafts stay off the public list")
	code, _ = do(t, srv, http.MethodGet, "/events/"+created.ID, "", false)
	assert.Equal(t, http.StatusNotFound, code)

	code, envelope = do(t, srv, http.MethodPut, "/admin/events/"+created.ID, eventBody(domain.StatusPublished), true)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "invalid_transition", envelope.Error.Code)

	for _, status := range []domain.ContentStatus{domain.StatusVerification, domain.StatusApproval, domain.StatusPublished} {
		code, envelope = do(t, srv, http.MethodPut, "/admin/events/"+created.ID, eventBody(status), true)
		require.Equal(t, http.StatusOK, code, status)
		assert.Equal(t, status, dataAs[domain.Event](t, envelope).Status)
	}

	code, envelope = do(t, srv, http.MethodGet, "/events/"+created.ID, "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Spring Hackathon", dataAs[domain.Event](t, envelope).Title)

	code, _ = do(t, srv, http.MethodPut, "/admin/events/evt_missing", eventBody(domain.StatusDraft), true)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodDelete, "/admin/events/"+created.ID, "", true)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = do(t, srv, http.MethodGet, "/events/"+created.ID, "", false)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_CancellationNotifies(t *testing.T) {
	srv := newTestServer(t)

	code, envelope := do(t, srv, http.MethodPost, "/admin/events", eventBody(""), true)
	require.Equal(t, http.StatusCreated, code)
	id := dataAs[domain.Event](t, envelope).ID
	for _, status := range []domain.ContentStatus{domain.StatusVerification, domain.StatusApproval, domain.StatusPublished, domain.StatusCancelled, domain.StatusCancelled} {
		code, _ = do(t, srv, http.MethodPut, "/admin/events/"+id, eventBody(status), true)
		require.Equal(t, http.StatusOK, code, status)
	}

	code, envelope = do(t, srv, http.MethodGet, "/notifications", "", false)
	require.Equal(t, http.StatusOK, code)
	list := dataAs[struct {
		Items  []domain.Notification `json:"items"`
		Unread int                   `json:"unread"`
	}](t, envelope)
	require.Len(t, list.Items, 1, "a repeated cancelled update emits nothing")
	assert.Equal(t, domain.SeverityUrgent, list.Items[0].Type)
	assert.Equal(t, id, list.Items[0].EventID)

	code, _ = do(t, srv, http.MethodPost, "/notifications/"+list.Items[0].ID+"/archive", "", false)
	assert.Equal(t, http.StatusNoContent, code)
	code, envelope = do(t, srv, http.MethodGet, "/notifications?archived=false", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(must(json.Marshal(envelope.Data))), `"items":[]`)
}

func TestRouter_FormsAndAlbums(t *testing.T) {
	srv := newTestServer(t)

	code, envelope := do(t, srv, http.MethodGet, "/events/evt_1/form", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, dataAs[[]domain.FormField](t, envelope))

	code, _ = do(t, srv, http.MethodPost, "/admin/events/evt_1/form/templates/consent", "", true)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, srv, http.MethodPost, "/admin/events/evt_1/form/clone", `{"targetEventId":"evt_2"}`, true)
	require.Equal(t, http.StatusOK, code)
	code, envelope = do(t, srv, http.MethodGet, "/events/evt_2/form", "", false)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, dataAs[[]domain.FormField](t, envelope))

	code, _ = do(t, srv, http.MethodPut, "/admin/albums/some-album", `{}`, true)
	assert.Equal(t, http.StatusMethodNotAllowed, code, "albums cannot be edited")
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
