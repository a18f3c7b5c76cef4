package domain

// MilestoneMedia is an optional picture or clip attached to a milestone.
type MilestoneMedia struct {
	Type        string `json:"type" validate:"oneof=image video"`
	URL         string `json:"url" validate:"required"`
	Testimonial string `json:"testimonial,omitempty"`
}

// TimelineMilestone is an entry of the club history timeline. Milestones have
// no publication status and are kept sorted by year.
type TimelineMilestone struct {
	ID        string          `json:"id"`
	Year      int             `json:"year" validate:"gt=0"`
	Milestone string          `json:"milestone" validate:"required"`
	Summary   string          `json:"summary"`
	Category  EventType       `json:"category" validate:"oneof=hackathon workshop social collaboration competition"`
	Media     *MilestoneMedia `json:"media,omitempty" validate:"omitempty"`
}

func (m TimelineMilestone) Validate() []string {
	return ValidationMessages(m)
}

// Clone returns a deep copy.
func (m *TimelineMilestone) Clone() *TimelineMilestone {
	if m == nil {
		return nil
	}
	out := *m
	if m.Media != nil {
		media := *m.Media
		out.Media = &media
	}
	return &out
}
