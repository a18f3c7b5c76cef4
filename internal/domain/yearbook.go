package domain

import "slices"

// Yearbook summarises one academic year.
type Yearbook struct {
	ID               string        `json:"id"`
	Year             int           `json:"year" validate:"gt=0"`
	Theme            string        `json:"theme"`
	ExecutiveSummary string        `json:"executiveSummary"`
	Highlights       []string      `json:"highlights"`
	Collage          []string      `json:"collage"`
	Status           ContentStatus `json:"status"`
}

func (y Yearbook) Validate() []string {
	return ValidationMessages(y)
}

// Clone returns a deep copy.
func (y *Yearbook) Clone() *Yearbook {
	if y == nil {
		return nil
	}
	out := *y
	out.Highlights = slices.Clone(y.Highlights)
	out.Collage = slices.Clone(y.Collage)
	return &out
}
