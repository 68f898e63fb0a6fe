package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"psycenter/internal/domain/models"
)

const appointmentsTable = "appointments"

var appointmentColumns = []string{
	"id", "program_id", "client_name", "client_phone", "client_email",
	"child_name", "child_age", "preferred_date", "preferred_time",
	"message", "status", "created_at",
}

type AppointmentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{db: db, sb: builder()}
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(
		&a.ID,
		&a.ProgramID,
		&a.ClientName,
		&a.ClientPhone,
		&a.ClientEmail,
		&a.ChildName,
		&a.ChildAge,
		&a.PreferredDate,
		&a.PreferredTime,
		&a.Message,
		&a.Status,
		&a.CreatedAt,
	)
	return a, err
}

func (r *AppointmentRepo) SaveAppointment(ctx context.Context, a models.Appointment) error {
	const op = "repository.appointment_repository.SaveAppointment"

	query, args, err := r.sb.Insert(appointmentsTable).
		Columns(appointmentColumns...).
		Values(a.ID, a.ProgramID, a.ClientName, a.ClientPhone, a.ClientEmail,
			a.ChildName, a.ChildAge, a.PreferredDate, a.PreferredTime,
			a.Message, a.Status, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return translate(op, err)
	}

	return nil
}

func (r *AppointmentRepo) AppointmentByID(ctx context.Context, id string) (models.Appointment, error) {
	const op = "repository.appointment_repository.AppointmentByID"

	query, args, err := r.sb.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	a, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Appointment{}, translate(op, err)
	}

	return a, nil
}

// Appointments returns every request, newest first.
func (r *AppointmentRepo) Appointments(ctx context.Context) ([]models.Appointment, error) {
	const op = "repository.appointment_repository.Appointments"

	query, args, err := r.sb.Select(appointmentColumns...).
		From(appointmentsTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	appointments := make([]models.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return appointments, nil
}

// UpdateAppointmentStatus overwrites the status and returns the updated row.
func (r *AppointmentRepo) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (models.Appointment, error) {
	const op = "repository.appointment_repository.UpdateAppointmentStatus"

	query, args, err := r.sb.Update(appointmentsTable).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(appointmentColumns)).
		ToSql()
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	a, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Appointment{}, translate(op, err)
	}

	return a, nil
}
