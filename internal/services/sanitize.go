package services

import (
	"hiveportal/internal/domain"
	"hiveportal/internal/sanitize"
)

// Free-text fields are escaped on write. Article HTML, markdown bodies and URLs are stored as given.

func sanitizeEvent(e *domain.Event) {
	e.Title = sanitize.String(e.Title)
	e.Description = sanitize.String(e.Description)
	e.Location.Name = sanitize.String(e.Location.Name)
	e.Location.Coordinates = sanitize.String(e.Location.Coordinates)
	e.Tags = sanitize.Strings(e.Tags)
	e.Organizers = sanitize.Strings(e.Organizers)
	for i := range e.Resources {
		e.Resources[i].Name = sanitize.String(e.Resources[i].Name)
	}
}

func sanitizeMember(m *domain.Member) {
	m.Name = sanitize.String(m.Name)
	m.Role = sanitize.String(m.Role)
	m.Message = sanitize.String(m.Message)
	m.Year = sanitize.String(m.Year)
	m.Journey = sanitize.Strings(m.Journey)
}

func sanitizeArticle(a *domain.Article) {
	a.Title = sanitize.String(a.Title)
	a.Excerpt = sanitize.String(a.Excerpt)
	a.Author = sanitize.String(a.Author)
	a.ReadTime = sanitize.String(a.ReadTime)
	a.Tags = sanitize.Strings(a.Tags)
	for i := range a.Comments {
		sanitizeComment(&a.Comments[i])
	}
}

func sanitizeComment(c *domain.Comment) {
	c.Author = sanitize.String(c.Author)
	c.Content = sanitize.String(c.Content)
}

func sanitizeMinute(m *domain.MeetingMinute) {
	m.Title = sanitize.String(m.Title)
	m.Attendees = sanitize.Strings(m.Attendees)
	m.Agenda = sanitize.Strings(m.Agenda)
	m.Decisions = sanitize.Strings(m.Decisions)
	m.ActionItems = sanitize.Strings(m.ActionItems)
}

func sanitizeMilestone(m *domain.TimelineMilestone) {
	m.Milestone = sanitize.String(m.Milestone)
	m.Summary = sanitize.String(m.Summary)
	if m.Media != nil {
		m.Media.Testimonial = sanitize.String(m.Media.Testimonial)
	}
}

func sanitizeYearbook(y *domain.Yearbook) {
	y.Theme = sanitize.String(y.Theme)
	y.ExecutiveSummary = sanitize.String(y.ExecutiveSummary)
	y.Highlights = sanitize.Strings(y.Highlights)
}

func sanitizeTrainingDoc(d *domain.TrainingDoc) {
	d.Title = sanitize.String(d.Title)
}

func sanitizeAlbum(a *domain.GalleryAlbum) {
	a.Title = sanitize.String(a.Title)
	a.Location = sanitize.String(a.Location)
	for i := range a.Assets {
		a.Assets[i].Caption = sanitize.String(a.Assets[i].Caption)
	}
}

func sanitizeField(f *domain.FormField) {
	f.Label = sanitize.String(f.Label)
	f.Placeholder = sanitize.String(f.Placeholder)
	f.Options = sanitize.Strings(f.Options)
}
