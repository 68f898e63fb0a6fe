package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the four known states. Any known state
// may be set from any other; there is no transition graph.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID            string            `db:"id" json:"id"`
	ProgramID     string            `db:"program_id" json:"program_id"`
	ClientName    string            `db:"client_name" json:"client_name"`
	ClientPhone   string            `db:"client_phone" json:"client_phone"`
	ClientEmail   string            `db:"client_email" json:"client_email"`
	ChildName     *string           `db:"child_name" json:"child_name,omitempty"`
	ChildAge      *int              `db:"child_age" json:"child_age,omitempty"`
	PreferredDate time.Time         `db:"preferred_date" json:"preferred_date"`
	PreferredTime string            `db:"preferred_time" json:"preferred_time"`
	Message       *string           `db:"message" json:"message,omitempty"`
	Status        AppointmentStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}
