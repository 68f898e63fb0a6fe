package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/storage"
	"psycenter/internal/transport/http/dto"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) SaveAppointment(ctx context.Context, a models.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAppointmentRepository) AppointmentByID(ctx context.Context, id string) (models.Appointment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Appointments(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (models.Appointment, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(models.Appointment), args.Error(1)
}

type MockProgramLookup struct {
	mock.Mock
}

func (m *MockProgramLookup) ProgramByID(ctx context.Context, id string) (models.Program, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Program), args.Error(1)
}

func bookingRequest(programID string) dto.CreateAppointmentRequest {
	return dto.CreateAppointmentRequest{
		ProgramID:     programID,
		ClientName:    "Анна",
		ClientPhone:   "+7 900 000-00-00",
		ClientEmail:   "anna@example.com",
		PreferredDate: dto.Date{Time: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)},
		PreferredTime: "10:00",
	}
}

func TestAppointmentService_CreateAppointment(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       dto.CreateAppointmentRequest
		mockSetup func(repo *MockAppointmentRepository, programs *MockProgramLookup)
		wantKind  apperr.Kind
	}{
		{
			name: "pending by default",
			req:  bookingRequest("p1"),
			mockSetup: func(repo *MockAppointmentRepository, programs *MockProgramLookup) {
				programs.On("ProgramByID", ctx, "p1").Return(models.Program{ID: "p1"}, nil).Once()
				repo.On("SaveAppointment", ctx, mock.MatchedBy(func(a models.Appointment) bool {
					return a.Status == models.StatusPending && a.ID != "" && a.ProgramID == "p1"
				})).Return(nil).Once()
			},
		},
		{
			name: "unknown program persists nothing",
			req:  bookingRequest("does-not-exist"),
			mockSetup: func(repo *MockAppointmentRepository, programs *MockProgramLookup) {
				programs.On("ProgramByID", ctx, "does-not-exist").Return(models.Program{}, storage.ErrNotFound).Once()
			},
			wantKind: apperr.KindNotFound,
		},
		{
			name: "missing date",
			req: func() dto.CreateAppointmentRequest {
				r := bookingRequest("p1")
				r.PreferredDate = dto.Date{}
				return r
			}(),
			mockSetup: func(*MockAppointmentRepository, *MockProgramLookup) {},
			wantKind:  apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAppointmentRepository)
			programs := new(MockProgramLookup)
			tt.mockSetup(repo, programs)

			svc := NewAppointmentService(slog.Default(), repo, programs)
			got, err := svc.CreateAppointment(ctx, tt.req)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				repo.AssertNotCalled(t, "SaveAppointment", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.StatusPending, got.Status)
			}

			repo.AssertExpectations(t)
			programs.AssertExpectations(t)
		})
	}
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("any known status from any state", func(t *testing.T) {
		for _, status := range []models.AppointmentStatus{
			models.StatusCompleted, models.StatusPending, models.StatusCancelled, models.StatusConfirmed,
		} {
			repo := new(MockAppointmentRepository)
			repo.On("UpdateAppointmentStatus", ctx, "a1", status).
				Return(models.Appointment{ID: "a1", Status: status}, nil).Once()

			svc := NewAppointmentService(slog.Default(), repo, new(MockProgramLookup))
			got, err := svc.UpdateStatus(ctx, "a1", status)
			require.NoError(t, err)
			assert.Equal(t, status, got.Status)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := NewAppointmentService(slog.Default(), repo, new(MockProgramLookup))

		_, err := svc.UpdateStatus(ctx, "a1", "archived")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		repo.On("UpdateAppointmentStatus", ctx, "missing", models.StatusConfirmed).
			Return(models.Appointment{}, storage.ErrNotFound).Once()

		svc := NewAppointmentService(slog.Default(), repo, new(MockProgramLookup))
		_, err := svc.UpdateStatus(ctx, "missing", models.StatusConfirmed)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
