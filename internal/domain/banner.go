package domain

import "time"

// BannerConfig is the singleton site-wide announcement banner.
// When LinkedEventID names an existing event, TargetDate follows that event's start.
type BannerConfig struct {
	IsVisible     bool       `json:"isVisible"`
	Message       string     `json:"message"`
	Link          string     `json:"link,omitempty"`
	ShowCountdown bool       `json:"showCountdown"`
	TargetDate    *time.Time `json:"targetDate,omitempty"`
	LinkedEventID string     `json:"linkedEventId,omitempty"`
}

// Clone returns a deep copy.
func (b *BannerConfig) Clone() *BannerConfig {
	if b == nil {
		return nil
	}
	out := *b
	if b.TargetDate != nil {
		t := *b.TargetDate
		out.TargetDate = &t
	}
	return &out
}
