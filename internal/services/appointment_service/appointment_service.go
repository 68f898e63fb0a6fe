package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/repository"
	"psycenter/internal/storage"
	"psycenter/internal/transport/http/dto"
)

var (
	ErrProgramNotFound     = apperr.NotFound("Program not found")
	ErrAppointmentNotFound = apperr.NotFound("Appointment not found")
	ErrInvalidStatus       = apperr.Validation("Invalid appointment status")
	ErrPreferredDate       = apperr.Validation("preferred_date is required")
)

// ProgramLookup is the part of the program store an appointment needs.
type ProgramLookup interface {
	ProgramByID(ctx context.Context, id string) (models.Program, error)
}

type AppointmentService struct {
	log      *slog.Logger
	repo     repository.AppointmentRepository
	programs ProgramLookup
	now      func() time.Time
}

func NewAppointmentService(log *slog.Logger, repo repository.AppointmentRepository, programs ProgramLookup) *AppointmentService {
	return &AppointmentService{log: log, repo: repo, programs: programs, now: time.Now}
}

// CreateAppointment records a public booking request. The referenced program
// must exist; nothing is stored otherwise.
func (s *AppointmentService) CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest) (models.Appointment, error) {
	const op = "appointment_service.CreateAppointment"
	log := s.log.With(
		slog.String("op", op),
		slog.String("program_id", req.ProgramID),
	)

	if req.PreferredDate.IsZero() {
		return models.Appointment{}, fmt.Errorf("%s: %w", op, ErrPreferredDate)
	}

	if _, err := s.programs.ProgramByID(ctx, req.ProgramID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("appointment for unknown program")
			return models.Appointment{}, fmt.Errorf("%s: %w", op, ErrProgramNotFound)
		}
		log.Error("failed to check program", sl.Err(err))
		return models.Appointment{}, fmt.Errorf("%s: %w", op, err)
	}

	a := models.Appointment{
		ID:            uuid.NewString(),
		ProgramID:     req.ProgramID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ChildName:     req.ChildName,
		ChildAge:      req.ChildAge,
		PreferredDate: req.PreferredDate.Time,
		PreferredTime: req.PreferredTime,
		Message:       req.Message,
		Status:        models.StatusPending,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.SaveAppointment(ctx, a); err != nil {
		log.Error("failed to save appointment", sl.Err(err))
		return models.Appointment{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("appointment created", slog.String("appointment_id", a.ID))

	return a, nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	const op = "appointment_service.ListAppointments"

	list, err := s.repo.Appointments(ctx)
	if err != nil {
		s.log.Error("failed to list appointments", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// UpdateStatus sets any known status regardless of the current one.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (models.Appointment, error) {
	const op = "appointment_service.UpdateStatus"
	log := s.log.With(
		slog.String("op", op),
		slog.String("appointment_id", id),
		slog.String("status", string(status)),
	)

	if !status.Valid() {
		return models.Appointment{}, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	a, err := s.repo.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Appointment{}, fmt.Errorf("%s: %w", op, ErrAppointmentNotFound)
		}
		log.Error("failed to update status", sl.Err(err))
		return models.Appointment{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("appointment status updated")

	return a, nil
}
