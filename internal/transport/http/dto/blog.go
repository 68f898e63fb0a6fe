package dto

// BlogPostRequest is the full post payload for create and update.
type BlogPostRequest struct {
	Title     string   `json:"title" validate:"required,max=255"`
	Slug      string   `json:"slug" validate:"required,slug"`
	Excerpt   string   `json:"excerpt" validate:"max=1024"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author" validate:"max=255"`
	Tags      []string `json:"tags"`
	ImageURL  string   `json:"image_url" validate:"omitempty,max=2048"`
	Published bool     `json:"published"`
}
