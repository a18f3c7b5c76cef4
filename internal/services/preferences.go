package services

import (
	"context"

	"hiveportal/internal/domain"
)

func (s *Store) Preferences(ctx context.Context) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// UpdatePreferences stores display settings and the agreement flag under their own keys.
func (s *Store) UpdatePreferences(ctx context.Context, p domain.Preferences) (domain.Preferences, error) {
	if err := domain.ValidateStruct(p); err != nil {
		return domain.Preferences{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
	s.save(ctx, domain.KeySettings, s.prefs.Settings)
	s.save(ctx, domain.KeyAgreement, s.prefs.AgreementAccepted)
	return s.prefs, nil
}
