package domain

import "slices"

// Member is a team profile shown on the team page.
type Member struct {
	ID      string        `json:"id"`
	Name    string        `json:"name" validate:"required"`
	Role    string        `json:"role" validate:"required"`
	Message string        `json:"message"`
	Image   string        `json:"image"`
	Year    string        `json:"year"`
	Journey []string      `json:"journey"`
	Status  ContentStatus `json:"status"`
}

func (m Member) Validate() []string {
	return ValidationMessages(m)
}

// Clone returns a deep copy.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	out := *m
	out.Journey = slices.Clone(m.Journey)
	return &out
}
