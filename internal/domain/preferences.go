package domain

// AppSettings are the visitor display preferences.
type AppSettings struct {
	Theme        string `json:"theme" validate:"oneof=light dark"`
	FontSize     string `json:"fontSize" validate:"oneof=default large xl"`
	HighContrast bool   `json:"highContrast"`
	ReduceMotion bool   `json:"reduceMotion"`
	DyslexicFont bool   `json:"dyslexicFont"`
	MatrixMode   bool   `json:"matrixMode"`
}

// DefaultAppSettings is used when nothing has been stored.
func DefaultAppSettings() AppSettings {
	return AppSettings{Theme: "light", FontSize: "default"}
}

// Preferences bundles the UI singletons persisted next to the content collections.
type Preferences struct {
	Settings          AppSettings `json:"settings"`
	AgreementAccepted bool        `json:"agreementAccepted"`
}

func (p Preferences) Validate() []string {
	return ValidationMessages(p)
}
