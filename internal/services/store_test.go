package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiveportal/internal/adapters/storage"
	"hiveportal/internal/domain"
	"hiveportal/internal/repository/memory"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// recordingSink collects published notifications.
type recordingSink struct {
	mu  sync.Mutex
	got []*domain.Notification
}

func (r *recordingSink) Publish(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return nil
}

func (r *recordingSink) notifications() []*domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Notification(nil), r.got...)
}

func testEvent(id string, status domain.ContentStatus, start time.Time) *domain.Event {
	return &domain.Event{
		ID:       id,
		Title:    "Hive Hackathon",
		Type:     domain.EventTypeHackathon,
		Status:   status,
		Datetime: domain.EventWindow{Start: start, End: start.Add(4 * time.Hour)},
		Location: domain.EventLocation{Name: "Innovation Lab"},
		Capacity: 50,
	}
}

// newTestStore builds a store over a fresh in-memory backend seeded with ds.
func newTestStore(t *testing.T, ds *domain.Dataset) (*Store, domain.KVStore) {
	t.Helper()
	kv := memory.NewKVStore(0)
	return openTestStore(t, kv, ds), kv
}

func openTestStore(t *testing.T, kv domain.KVStore, ds *domain.Dataset) *Store {
	t.Helper()
	s := NewStore(context.Background(), storage.NewAdapter(kv, testLogger), ds, testLogger, time.Second)
	s.now = func() time.Time { return testNow }
	return s
}

func readKey[T any](t *testing.T, kv domain.KVStore, key string) T {
	t.Helper()
	raw, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestNewStore_SeedsAndPersistsDefaults(t *testing.T) {
	ds := &domain.Dataset{
		Events:  []*domain.Event{testEvent("evt_1", domain.StatusPublished, testNow.Add(48*time.Hour))},
		Members: []*domain.Member{{ID: "m1", Name: "Asha", Role: "Lead", Status: domain.StatusPublished}},
		Banner:  domain.BannerConfig{IsVisible: true, Message: "Welcome"},
	}
	s, kv := newTestStore(t, ds)

	require.Len(t, s.ListEvents(context.Background()), 1)
	events := readKey[[]domain.Event](t, kv, domain.KeyEvents)
	require.Len(t, events, 1)
	assert.Equal(t, "evt_1", events[0].ID)

	members := readKey[[]domain.Member](t, kv, domain.KeyTeam)
	require.Len(t, members, 1)

	banner := readKey[domain.BannerConfig](t, kv, domain.KeyBannerConfig)
	assert.Equal(t, "Welcome", banner.Message)

	// Empty collections are stored as [] so a restart does not reseed them.
	raw, err := kv.Get(context.Background(), domain.KeyArticles)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestNewStore_DefaultsAreCopied(t *testing.T) {
	ds := &domain.Dataset{Events: []*domain.Event{testEvent("evt_1", domain.StatusPublished, testNow)}}
	s, _ := newTestStore(t, ds)

	ds.Events[0].Title = "changed"
	got, ok := s.GetEvent(context.Background(), "evt_1")
	require.True(t, ok)
	assert.Equal(t, "Hive Hackathon", got.Title)
}

func TestNewStore_RestartReadsStoredData(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, &domain.Dataset{})

	added, err := s.AddMember(ctx, &domain.Member{Name: "Asha", Role: "Lead"})
	require.NoError(t, err)
	_, err = s.AddArticle(ctx, &domain.Article{Title: "Hello", Author: "Asha"})
	require.NoError(t, err)
	s.UpdateBannerConfig(ctx, domain.BannerConfig{IsVisible: true, Message: "Soon"})
	_, err = s.SaveFormConfig(ctx, "evt_1", []domain.FormField{{Type: domain.FieldText, Label: "Name"}})
	require.NoError(t, err)

	// A restart with different defaults must not reseed stored keys.
	restarted := openTestStore(t, kv, &domain.Dataset{Members: []*domain.Member{{ID: "seed", Name: "Seed", Role: "x"}}})

	members := restarted.ListMembers(ctx)
	require.Len(t, members, 1)
	assert.Equal(t, added.ID, members[0].ID)
	assert.Len(t, restarted.ListArticles(ctx), 1)
	assert.Equal(t, "Soon", restarted.BannerConfig(ctx).Message)
	assert.Len(t, restarted.GetFormConfig(ctx, "evt_1"), 1)
}

func TestNewStore_MalformedDataFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore(0)
	require.NoError(t, kv.Set(ctx, domain.KeyEvents, []byte(`{not json`)))
	require.NoError(t, kv.Set(ctx, domain.KeyTeam, []byte(`{"id":"not a list"}`)))

	ds := &domain.Dataset{
		Events:  []*domain.Event{testEvent("evt_seed", domain.StatusPublished, testNow)},
		Members: []*domain.Member{{ID: "m_seed", Name: "Seed", Role: "Lead", Status: domain.StatusPublished}},
	}
	s := openTestStore(t, kv, ds)

	events := s.ListEvents(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "evt_seed", events[0].ID)
	members := s.ListMembers(ctx)
	require.Len(t, members, 1)
	assert.Equal(t, "m_seed", members[0].ID)

	// The seed replaced the broken value.
	stored := readKey[[]domain.Event](t, kv, domain.KeyEvents)
	require.Len(t, stored, 1)
}

func TestNewStore_BackfillsLegacyRecords(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore(0)
	require.NoError(t, kv.Set(ctx, domain.KeyEvents, []byte(`[{"id":"evt_1","title":"Legacy Meetup","type":"social","capacity":20,"datetime":{"start":"2025-03-11T05:00:00Z","end":"2025-03-11T08:00:00Z"},"location":{"name":"Hall"}}]`)))
	require.NoError(t, kv.Set(ctx, domain.KeyTeam, []byte(`[{"id":"m1","name":"Asha","role":"Lead"}]`)))
	require.NoError(t, kv.Set(ctx, domain.KeyArticles, []byte(`[{"id":"a1","title":"Hi","author":"Asha"}]`)))
	require.NoError(t, kv.Set(ctx, domain.KeyNotifications, []byte(`[{"id":"n1","title":"Welcome"}]`)))
	require.NoError(t, kv.Set(ctx, domain.KeyMilestones, []byte(`[{"id":"b","year":2024,"milestone":"B","category":"social"},{"id":"a","year":2021,"milestone":"A","category":"social"}]`)))

	s := NewStore(ctx, storage.NewAdapter(kv, testLogger), &domain.Dataset{}, testLogger, time.Second)

	s.now = func() time.Time { return testNow }
	assert.Equal(t, domain.StatusPublished, s.ListEvents(ctx)[0].Status)
	assert.Equal(t, domain.StatusPublished, s.ListMembers(ctx)[0].Status)
	assert.Equal(t, domain.StatusPublished, s.ListArticles(ctx)[0].Status)

	// A backfilled event takes part in the pipeline and the countdown check.
	assert.Len(t, s.CheckEventCountdowns(ctx, testNow), 1)
	legacy := testEvent("evt_1", domain.StatusCompleted, testNow.Add(20*time.Hour))
	ok, err := s.UpdateEvent(ctx, legacy)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, s.ListNotifications(ctx, domain.NotificationFilter{})[0].Timestamp.IsZero())
	milestones := s.ListMilestones(ctx)
	require.Len(t, milestones, 2)
	assert.Equal(t, "a", milestones[0].ID)
}

func TestNewStore_LoadsPreferences(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore(0)
	require.NoError(t, kv.Set(ctx, domain.KeySettings, []byte(`{"theme":"dark","fontSize":"large","matrixMode":true}`)))
	require.NoError(t, kv.Set(ctx, domain.KeyAgreement, []byte(`true`)))

	s := openTestStore(t, kv, &domain.Dataset{})
	prefs := s.Preferences(ctx)
	assert.Equal(t, "dark", prefs.Settings.Theme)
	assert.True(t, prefs.Settings.MatrixMode)
	assert.True(t, prefs.AgreementAccepted)
}

func TestUpdatePreferences(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, &domain.Dataset{})

	assert.Equal(t, domain.DefaultAppSettings(), s.Preferences(ctx).Settings)

	next := domain.Preferences{Settings: domain.AppSettings{Theme: "dark", FontSize: "xl", ReduceMotion: true}, AgreementAccepted: true}
	got, err := s.UpdatePreferences(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, next, got)
	assert.Equal(t, "xl", readKey[domain.AppSettings](t, kv, domain.KeySettings).FontSize)
	assert.True(t, readKey[bool](t, kv, domain.KeyAgreement))

	_, err = s.UpdatePreferences(ctx, domain.Preferences{Settings: domain.AppSettings{Theme: "neon", FontSize: "default"}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "dark", s.Preferences(ctx).Settings.Theme)
}

func TestStore_QuotaFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore(0)
	adapter := storage.NewAdapter(kv, testLogger)
	s := NewStore(ctx, adapter, &domain.Dataset{}, testLogger, time.Second)

	// Swap in a tiny backend so the next event write overflows.
	s.persister = storage.NewAdapter(memory.NewKVStore(16), testLogger)
	added, err := s.AddEvent(ctx, testEvent("", domain.StatusDraft, testNow.Add(24*time.Hour)))
	require.NoError(t, err)

	_, ok := s.GetEvent(ctx, added.ID)
	assert.True(t, ok)
	warnings := s.persister.(*storage.Adapter).Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.KeyEvents, warnings[0].Key)
	assert.True(t, warnings[0].QuotaFull)
}
