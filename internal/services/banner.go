package services

import (
	"context"

	"hiveportal/internal/domain"
	"hiveportal/internal/sanitize"
)

// BannerConfig returns a copy of the site banner.
func (s *Store) BannerConfig(ctx context.Context) domain.BannerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.banner.Clone()
}

// UpdateBannerConfig replaces the banner. A linked event that exists sets the
// countdown target to its start, and its title fills an empty message.
func (s *Store) UpdateBannerConfig(ctx context.Context, b domain.BannerConfig) domain.BannerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *b.Clone()
	if next.LinkedEventID != "" {
		if i := s.events.index(next.LinkedEventID); i >= 0 {
			evt := s.events.items[i]
			start := evt.Datetime.Start
			next.TargetDate = &start
			if next.Message == "" {
				next.Message = evt.Title
			}
		}
	}
	next.Message = sanitize.String(next.Message)

	s.banner = next
	s.save(ctx, domain.KeyBannerConfig, s.banner)
	return *s.banner.Clone()
}
