package domain

import (
	"context"
	"time"
)

// Persistence keys. Each collection and each singleton is written under its own key.
const (
	KeyEvents        = "hive_events"
	KeyTeam          = "hive_team"
	KeyArticles      = "hive_articles"
	KeyYearbooks     = "hive_yearbooks"
	KeyTraining      = "hive_training"
	KeyMinutes       = "hive_minutes"
	KeyNotifications = "hive_notifications"
	KeyMilestones    = "hive_milestones"
	KeyAlbums        = "hive_albums"
	KeyBannerConfig  = "hive_banner_config"
	KeyFormConfigs   = "hive_form_configs"
	KeySettings      = "hive_settings"
	KeyAgreement     = "hive_agreement"
)

// CriticalKeys are the keys whose write failures are surfaced to users.
var CriticalKeys = []string{KeyEvents, KeyFormConfigs}

// KVStore is a whole-value key-value backend. Get of a missing key returns
// ErrNotFound; a write that would exceed capacity returns an error wrapping
// ErrQuotaExceeded.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Persister saves and loads JSON values by key. Load reports found=false for
// absent or unreadable data.
type Persister interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) (found bool, err error)
}

// StorageWarning is the user-visible notice raised when a critical key fails to save.
type StorageWarning struct {
	Key       string    `json:"key"`
	Message   string    `json:"message"`
	QuotaFull bool      `json:"quotaFull"`
	RaisedAt  time.Time `json:"raisedAt"`
}

// StorageWarningListener is told about newly raised warnings.
type StorageWarningListener interface {
	StorageWarningRaised(w StorageWarning)
}
