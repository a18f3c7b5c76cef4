package domain

// TrainingDoc is an internal handbook page. Content is markdown and stored as given.
type TrainingDoc struct {
	ID          string        `json:"id"`
	Title       string        `json:"title" validate:"required"`
	Category    string        `json:"category" validate:"oneof=onboarding technical governance"`
	Content     string        `json:"content"`
	LastUpdated string        `json:"lastUpdated"`
	Status      ContentStatus `json:"status"`
}

func (d TrainingDoc) Validate() []string {
	return ValidationMessages(d)
}

// Clone returns a copy.
func (d *TrainingDoc) Clone() *TrainingDoc {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}
