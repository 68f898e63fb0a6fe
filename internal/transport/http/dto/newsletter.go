package dto

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type BroadcastRequest struct {
	Subject     string `json:"subject" validate:"required,max=255"`
	HTMLContent string `json:"html_content" validate:"required"`
}
