package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"psycenter/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Date accepts either an RFC 3339 timestamp or a bare calendar date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}

	return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", raw)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

type CreateAppointmentRequest struct {
	ProgramID     string  `json:"program_id" validate:"required"`
	ClientName    string  `json:"client_name" validate:"required,max=255"`
	ClientPhone   string  `json:"client_phone" validate:"required,max=32"`
	ClientEmail   string  `json:"client_email" validate:"required,email"`
	ChildName     *string `json:"child_name,omitempty"`
	ChildAge      *int    `json:"child_age,omitempty" validate:"omitempty,min=0,max=18"`
	PreferredDate Date    `json:"preferred_date" swaggertype:"string" example:"2026-11-02"`
	PreferredTime string  `json:"preferred_time" validate:"required"`
	Message       *string `json:"message,omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" query:"status" validate:"required" enums:"pending,confirmed,completed,cancelled"`
}
