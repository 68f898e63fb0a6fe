package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ProgramType string

const (
	ProgramPreschool        ProgramType = "preschool"
	ProgramEarlyDevelopment ProgramType = "early_development"
	ProgramIndividualChild  ProgramType = "individual_child"
	ProgramIndividualAdult  ProgramType = "individual_adult"
	ProgramGroupChild       ProgramType = "group_child"
	ProgramGoalSetting      ProgramType = "goal_setting"
)

func (t ProgramType) Valid() bool {
	switch t {
	case ProgramPreschool, ProgramEarlyDevelopment, ProgramIndividualChild,
		ProgramIndividualAdult, ProgramGroupChild, ProgramGoalSetting:
		return true
	}
	return false
}

// FAQItem is one question/answer pair shown on a program page.
type FAQItem struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// FAQ is stored as a JSONB array.
type FAQ []FAQItem

// Value реализует driver.Valuer для JSONB
func (f FAQ) Value() (driver.Value, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f)
}

// Scan реализует sql.Scanner для JSONB
func (f *FAQ) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*f = FAQ{}
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("faq: unsupported scan type %T", value)
	}
}

type Program struct {
	ID          string      `db:"id" json:"id"`
	Type        ProgramType `db:"type" json:"type"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Goals       []string    `db:"goals" json:"goals"`
	AgeRange    string      `db:"age_range" json:"age_range"`
	Price       int         `db:"price" json:"price"`
	Duration    string      `db:"duration" json:"duration"`
	FAQ         FAQ         `db:"faq" json:"faq"`
	ImageURL    string      `db:"image_url" json:"image_url"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}
