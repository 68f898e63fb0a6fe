package dto

type CreateContactRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Subject string  `json:"subject" validate:"required,max=255"`
	Message string  `json:"message" validate:"required"`
}
