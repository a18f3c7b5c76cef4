package domain

import "slices"

// ExifData is camera metadata attached to a photo.
type ExifData struct {
	ISO      string `json:"iso"`
	Aperture string `json:"aperture"`
	Shutter  string `json:"shutter"`
	Camera   string `json:"camera"`
	Lens     string `json:"lens"`
}

// MediaAsset is one photo or video in an album.
type MediaAsset struct {
	ID        string    `json:"id"`
	URL       string    `json:"url" validate:"required"`
	Type      string    `json:"type,omitempty" validate:"omitempty,oneof=image video"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	Format    string    `json:"format" validate:"omitempty,oneof=webp jpg png mp4"`
	SizeBytes int64     `json:"size_bytes"`
	Exif      *ExifData `json:"exif,omitempty"`
	Caption   string    `json:"caption,omitempty"`
}

// GalleryAlbum groups media from one event. Albums are only added or deleted.
type GalleryAlbum struct {
	AlbumID  string       `json:"album_id"`
	Title    string       `json:"title" validate:"required"`
	Date     string       `json:"date"`
	Location string       `json:"location"`
	Assets   []MediaAsset `json:"assets" validate:"dive"`
}

func (a GalleryAlbum) Validate() []string {
	return ValidationMessages(a)
}

// Clone returns a deep copy.
func (a *GalleryAlbum) Clone() *GalleryAlbum {
	if a == nil {
		return nil
	}
	out := *a
	out.Assets = slices.Clone(a.Assets)
	for i := range out.Assets {
		if out.Assets[i].Exif != nil {
			exif := *out.Assets[i].Exif
			out.Assets[i].Exif = &exif
		}
	}
	return &out
}
