package domain

import (
	"fmt"
	"slices"
)

// FieldType is the input kind of a registration form field.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldEmail       FieldType = "email"
	FieldPhone       FieldType = "phone"
	FieldURL         FieldType = "url"
	FieldNumber      FieldType = "number"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldRadio       FieldType = "radio"
	FieldCheckbox    FieldType = "checkbox"
	FieldFile        FieldType = "file"
	FieldImage       FieldType = "image"
	FieldStaticImage FieldType = "static_image"
	FieldDescription FieldType = "description"
)

var knownFieldTypes = []FieldType{
	FieldText, FieldTextarea, FieldEmail, FieldPhone, FieldURL, FieldNumber, FieldDate,
	FieldSelect, FieldRadio, FieldCheckbox, FieldFile, FieldImage, FieldStaticImage, FieldDescription,
}

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	return slices.Contains(knownFieldTypes, t)
}

// IsInput reports whether the field collects a value. Description and static image
// fields are display-only.
func (t FieldType) IsInput() bool {
	return t != FieldDescription && t != FieldStaticImage
}

// FormField is one entry of a custom registration form. Content carries the
// markdown body of description fields or the image URL of static_image fields.
type FormField struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Content     string    `json:"content,omitempty"`
}

// Validate checks the field type and that choice fields carry options.
func (f FormField) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, f.Type)
	}
	if (f.Type == FieldSelect || f.Type == FieldRadio) && len(f.Options) == 0 {
		return fmt.Errorf("%w: %s field %q needs options", ErrInvalidInput, f.Type, f.Label)
	}
	return nil
}

// EventFormConfig binds a field list to an event.
type EventFormConfig struct {
	EventID string      `json:"eventId"`
	Fields  []FormField `json:"fields"`
}

// CloneFields deep-copies a field list. The result is never nil.
func CloneFields(fields []FormField) []FormField {
	out := make([]FormField, len(fields))
	for i, f := range fields {
		f.Options = slices.Clone(f.Options)
		out[i] = f
	}
	return out
}
