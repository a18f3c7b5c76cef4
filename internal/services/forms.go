package services

import (
	"context"
	"fmt"
	"slices"

	"hiveportal/internal/domain"
)

var formTemplates = map[string][]domain.FormField{
	"contact": {
		{Type: domain.FieldText, Label: "Full Name", Required: true, Placeholder: "Your name"},
		{Type: domain.FieldEmail, Label: "Email Address", Required: true, Placeholder: "you@example.com"},
		{Type: domain.FieldPhone, Label: "Phone Number", Placeholder: "98XXXXXXXX"},
	},
	"academic": {
		{Type: domain.FieldSelect, Label: "Year of Study", Required: true, Options: []string{"First Year", "Second Year", "Third Year", "Fourth Year"}},
		{Type: domain.FieldText, Label: "Program", Required: true, Placeholder: "e.g. Computer Engineering"},
		{Type: domain.FieldText, Label: "Roll Number"},
	},
	"consent": {
		{Type: domain.FieldDescription, Label: "Data Usage", Content: "Your details are used for event logistics only."},
		{Type: domain.FieldCheckbox, Label: "I consent to my data being processed for event logistics.", Required: true},
	},
	"banner": {
		{Type: domain.FieldStaticImage, Label: "Event Banner"},
		{Type: domain.FieldDescription, Label: "About This Event"},
	},
}

// FormTemplates lists the names accepted by ApplyFormTemplate.
func FormTemplates() []string {
	names := make([]string, 0, len(formTemplates))
	for name := range formTemplates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *Store) formIndex(eventID string) int {
	return slices.IndexFunc(s.forms, func(fc domain.EventFormConfig) bool { return fc.EventID == eventID })
}

// GetFormConfig returns the fields of eventID's form. An event without a
// custom form yields an empty slice.
func (s *Store) GetFormConfig(ctx context.Context, eventID string) []domain.FormField {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.formIndex(eventID); i >= 0 {
		return domain.CloneFields(s.forms[i].Fields)
	}
	return []domain.FormField{}
}

// SaveFormConfig creates or replaces the form of eventID and returns the stored fields.
func (s *Store) SaveFormConfig(ctx context.Context, eventID string, fields []domain.FormField) ([]domain.FormField, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: missing event id", domain.ErrInvalidInput)
	}
	next, err := prepareFields(fields)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putForm(ctx, eventID, next)
	return domain.CloneFields(next), nil
}

// CloneFormConfig copies the form of sourceID onto targetID. It reports false
// when the source has no form.
func (s *Store) CloneFormConfig(ctx context.Context, sourceID, targetID string) (bool, error) {
	if targetID == "" {
		return false, fmt.Errorf("%w: missing target event id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.formIndex(sourceID)
	if i < 0 {
		return false, nil
	}
	s.putForm(ctx, targetID, domain.CloneFields(s.forms[i].Fields))
	return true, nil
}

// ApplyFormTemplate appends the named field group to eventID's form, each
// field with a fresh id.
func (s *Store) ApplyFormTemplate(ctx context.Context, eventID, name string) ([]domain.FormField, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: missing event id", domain.ErrInvalidInput)
	}
	tmpl, ok := formTemplates[name]
	if !ok {
		return nil, fmt.Errorf("form template %q: %w", name, domain.ErrNotFound)
	}
	added, err := prepareFields(tmpl)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var fields []domain.FormField
	if i := s.formIndex(eventID); i >= 0 {
		fields = domain.CloneFields(s.forms[i].Fields)
	}
	fields = append(fields, added...)
	s.putForm(ctx, eventID, fields)
	return domain.CloneFields(fields), nil
}

func (s *Store) putForm(ctx context.Context, eventID string, fields []domain.FormField) {
	if i := s.formIndex(eventID); i >= 0 {
		s.forms[i].Fields = fields
	} else {
		s.forms = append(s.forms, domain.EventFormConfig{EventID: eventID, Fields: fields})
	}
	s.save(ctx, domain.KeyFormConfigs, s.forms)
}

func prepareFields(fields []domain.FormField) ([]domain.FormField, error) {
	out := domain.CloneFields(fields)
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		if out[i].ID == "" {
			out[i].ID = newID("fld")
		}
		sanitizeField(&out[i])
	}
	return out, nil
}
