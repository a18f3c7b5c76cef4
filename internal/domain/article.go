package domain

import "slices"

// Comment is a reader comment on an article. Comments are append-only.
type Comment struct {
	ID      string `json:"id"`
	Author  string `json:"author" validate:"required"`
	Date    string `json:"date"`
	Content string `json:"content" validate:"required"`
}

func (c Comment) Validate() []string {
	return ValidationMessages(c)
}

// Article is a blog post. Content is HTML and is stored as given.
// Comments are kept newest first.
type Article struct {
	ID       string        `json:"id"`
	Title    string        `json:"title" validate:"required"`
	Excerpt  string        `json:"excerpt"`
	Content  string        `json:"content"`
	Author   string        `json:"author" validate:"required"`
	Date     string        `json:"date"`
	Image    string        `json:"image"`
	Tags     []string      `json:"tags"`
	ReadTime string        `json:"readTime"`
	Status   ContentStatus `json:"status"`
	Comments []Comment     `json:"comments"`
}

func (a Article) Validate() []string {
	return ValidationMessages(a)
}

// Clone returns a deep copy.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	out := *a
	out.Tags = slices.Clone(a.Tags)
	out.Comments = slices.Clone(a.Comments)
	return &out
}
