package dto

import "psycenter/internal/domain/models"

// ProgramRequest is the full program payload for create and update.
type ProgramRequest struct {
	Type        models.ProgramType `json:"type" validate:"required,program_type" enums:"preschool,early_development,individual_child,individual_adult,group_child,goal_setting"`
	Title       string             `json:"title" validate:"required,max=255"`
	Description string             `json:"description" validate:"required"`
	Goals       []string           `json:"goals"`
	AgeRange    string             `json:"age_range" validate:"required"`
	Price       int                `json:"price" validate:"min=0"`
	Duration    string             `json:"duration" validate:"required"`
	FAQ         []models.FAQItem   `json:"faq" validate:"dive"`
	ImageURL    string             `json:"image_url" validate:"omitempty,max=2048"`
}
