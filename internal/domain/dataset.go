package domain

// Dataset is the full set of collections the store hydrates from.
// It is used for the built-in defaults.
type Dataset struct {
	Events        []*Event             `json:"events"`
	Members       []*Member            `json:"members"`
	Articles      []*Article           `json:"articles"`
	Minutes       []*MeetingMinute     `json:"minutes"`
	Milestones    []*TimelineMilestone `json:"milestones"`
	Yearbooks     []*Yearbook          `json:"yearbooks"`
	Training      []*TrainingDoc       `json:"training"`
	Albums        []*GalleryAlbum      `json:"albums"`
	Notifications []*Notification      `json:"notifications"`
	Banner        BannerConfig         `json:"banner"`
	FormConfigs   []EventFormConfig    `json:"formConfigs"`
}
