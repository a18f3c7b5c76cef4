// Package storage turns a raw KV backend into the JSON persistence used by the store.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"sync"
	"time"

	"hiveportal/internal/domain"
)

const (
	quotaWarning   = "Storage limit reached: recent changes to %s could not be saved. Please clear data or use smaller images."
	genericWarning = "Recent changes to %s could not be saved. They stay visible until restart."
)

var keyLabels = map[string]string{
	domain.KeyEvents:      "events",
	domain.KeyFormConfigs: "registration forms",
}

// Adapter serializes values as JSON into a domain.KVStore. Save failures never
// panic; critical keys raise a one-time StorageWarning until a later save succeeds.
type Adapter struct {
	kv        domain.KVStore
	logger    *slog.Logger
	critical  map[string]bool
	now       func() time.Time
	mu        sync.Mutex
	warnings  map[string]domain.StorageWarning
	listeners []domain.StorageWarningListener
}

// NewAdapter wraps kv. The critical key set is domain.CriticalKeys.
func NewAdapter(kv domain.KVStore, logger *slog.Logger) *Adapter {
	critical := make(map[string]bool, len(domain.CriticalKeys))
	for _, k := range domain.CriticalKeys {
		critical[k] = true
	}
	return &Adapter{
		kv:       kv,
		logger:   logger,
		critical: critical,
		now:      time.Now,
		warnings: make(map[string]domain.StorageWarning),
	}
}

// AddListener registers l for newly raised warnings.
func (a *Adapter) AddListener(l domain.StorageWarningListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// Save encodes value and writes it whole under key.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("encode %s: %w", key, err)
		a.fail(key, err)
		return err
	}
	if err := a.kv.Set(ctx, key, data); err != nil {
		a.fail(key, err)
		return err
	}
	a.clear(key)
	return nil
}

// Load decodes the value stored under key into dest. Absent, null or malformed
// data reports found=false with a nil error and leaves dest untouched.
func (a *Adapter) Load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := a.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		a.logger.ErrorContext(ctx, "storage load failed", "key", key, "err", err)
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if !json.Valid(trimmed) {
		a.logger.WarnContext(ctx, "stored data is malformed, ignoring", "key", key, "bytes", len(data))
		return false, nil
	}
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, fmt.Errorf("load %s: destination must be a non-nil pointer", key)
	}
	// Decode into a fresh value so a shape mismatch cannot leave dest half-filled.
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(trimmed, fresh.Interface()); err != nil {
		a.logger.WarnContext(ctx, "stored data does not match expected shape, ignoring", "key", key, "err", err)
		return false, nil
	}
	target.Elem().Set(fresh.Elem())
	return true, nil
}

// Warnings returns the active warnings ordered by key.
func (a *Adapter) Warnings() []domain.StorageWarning {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.StorageWarning, 0, len(a.warnings))
	for _, w := range a.warnings {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.kv.Close()
}

func (a *Adapter) fail(key string, err error) {
	quota := errors.Is(err, domain.ErrQuotaExceeded)
	if quota {
		a.logger.Error("storage limit exceeded, data not persisted", "key", key, "err", err)
	} else {
		a.logger.Error("storage save failed", "key", key, "err", err)
	}
	if !a.critical[key] {
		return
	}

	a.mu.Lock()
	if _, raised := a.warnings[key]; raised {
		a.mu.Unlock()
		return
	}
	label := keyLabels[key]
	if label == "" {
		label = key
	}
	msg := fmt.Sprintf(genericWarning, label)
	if quota {
		msg = fmt.Sprintf(quotaWarning, label)
	}
	w := domain.StorageWarning{Key: key, Message: msg, QuotaFull: quota, RaisedAt: a.now()}
	a.warnings[key] = w
	listeners := slices.Clone(a.listeners)
	a.mu.Unlock()

	for _, l := range listeners {
		l.StorageWarningRaised(w)
	}
}

func (a *Adapter) clear(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.warnings, key)
}
