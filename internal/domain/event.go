package domain

import (
	"slices"
	"time"
)

// EventType classifies events and timeline milestones.
type EventType string

const (
	EventTypeHackathon     EventType = "hackathon"
	EventTypeWorkshop      EventType = "workshop"
	EventTypeSocial        EventType = "social"
	EventTypeCollaboration EventType = "collaboration"
	EventTypeCompetition   EventType = "competition"
)

// NotificationThreshold is a token recorded in an event's sent-notification ledger.
type NotificationThreshold string

const (
	Threshold72h       NotificationThreshold = "72h"
	Threshold24h       NotificationThreshold = "24h"
	Threshold1h        NotificationThreshold = "1h"
	ThresholdCancelled NotificationThreshold = "cancelled"
)

// EventWindow is the start/end pair of an event.
type EventWindow struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

// EventLocation names the venue.
type EventLocation struct {
	Name        string `json:"name" validate:"required"`
	Coordinates string `json:"coordinates,omitempty"`
}

// EventResource is a downloadable or linked attachment.
type EventResource struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"oneof=pdf link"`
	URL  string `json:"url" validate:"required"`
}

// Event is a club event moving through the publication pipeline.
// SentNotifications is the ledger of countdown/cancellation notices already emitted.
// Only the store writes it; incoming values are ignored.
type Event struct {
	ID                   string                  `json:"id"`
	Title                string                  `json:"title" validate:"required"`
	Type                 EventType               `json:"type" validate:"oneof=hackathon workshop social collaboration competition"`
	Status               ContentStatus           `json:"status"`
	Datetime             EventWindow             `json:"datetime"`
	RegistrationDeadline *time.Time              `json:"registrationDeadline,omitempty"`
	Location             EventLocation           `json:"location"`
	Capacity             int                     `json:"capacity" validate:"gt=0"`
	RegisteredCount      int                     `json:"registeredCount" validate:"gte=0"`
	Tags                 []string                `json:"tags"`
	Image                string                  `json:"image"`
	Description          string                  `json:"description"`
	Organizers           []string                `json:"organizers"`
	Resources            []EventResource         `json:"resources" validate:"dive"`
	SentNotifications    []NotificationThreshold `json:"sentNotifications"`
}

// HasSent reports whether t is already in the ledger.
func (e *Event) HasSent(t NotificationThreshold) bool {
	return slices.Contains(e.SentNotifications, t)
}

// MarkSent appends t to the ledger unless present.
func (e *Event) MarkSent(t NotificationThreshold) {
	if !e.HasSent(t) {
		e.SentNotifications = append(e.SentNotifications, t)
	}
}

// Validate implements the request Validator contract.
func (e Event) Validate() []string {
	return ValidationMessages(e)
}

// Clone returns a deep copy.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	out := *e
	if e.RegistrationDeadline != nil {
		d := *e.RegistrationDeadline
		out.RegistrationDeadline = &d
	}
	out.Tags = slices.Clone(e.Tags)
	out.Organizers = slices.Clone(e.Organizers)
	out.Resources = slices.Clone(e.Resources)
	out.SentNotifications = slices.Clone(e.SentNotifications)
	return &out
}

// IsPubliclyVisible reports whether the event appears on public listings.
func (e *Event) IsPubliclyVisible() bool {
	return e.Status == StatusPublished || e.Status.IsTerminal()
}
