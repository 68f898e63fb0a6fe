package models

import "time"

type BlogPost struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Excerpt   string    `db:"excerpt" json:"excerpt"`
	Content   string    `db:"content" json:"content"`
	Author    string    `db:"author" json:"author"`
	Tags      []string  `db:"tags" json:"tags"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Published bool      `db:"published" json:"published"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BlogFilter narrows a blog listing. PublishedOnly defaults to true at the
// HTTP boundary.
type BlogFilter struct {
	PublishedOnly bool
}
