package domain

import "slices"

// MeetingMinute records one committee meeting.
type MeetingMinute struct {
	ID          string        `json:"id"`
	Title       string        `json:"title" validate:"required"`
	Date        string        `json:"date" validate:"required"`
	Attendees   []string      `json:"attendees"`
	Agenda      []string      `json:"agenda"`
	Decisions   []string      `json:"decisions"`
	ActionItems []string      `json:"actionItems"`
	Status      ContentStatus `json:"status"`
}

func (m MeetingMinute) Validate() []string {
	return ValidationMessages(m)
}

// Clone returns a deep copy.
func (m *MeetingMinute) Clone() *MeetingMinute {
	if m == nil {
		return nil
	}
	out := *m
	out.Attendees = slices.Clone(m.Attendees)
	out.Agenda = slices.Clone(m.Agenda)
	out.Decisions = slices.Clone(m.Decisions)
	out.ActionItems = slices.Clone(m.ActionItems)
	return &out
}
