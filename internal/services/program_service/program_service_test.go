package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/storage"
	"psycenter/internal/storage/cache"
	"psycenter/internal/transport/http/dto"
)

type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) SaveProgram(ctx context.Context, p models.Program) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProgramRepository) UpdateProgram(ctx context.Context, p models.Program) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProgramRepository) DeleteProgram(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProgramRepository) ProgramByID(ctx context.Context, id string) (models.Program, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Program), args.Error(1)
}

func (m *MockProgramRepository) Programs(ctx context.Context) ([]models.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Program), args.Error(1)
}

func validRequest() dto.ProgramRequest {
	return dto.ProgramRequest{
		Type:        models.ProgramPreschool,
		Title:       "Подготовка к школе",
		Description: "Развитие внимания и речи",
		AgeRange:    "5-7 лет",
		Price:       1500,
		Duration:    "60 минут",
		FAQ:         []models.FAQItem{{Question: "Нужна ли форма?", Answer: "Нет"}},
	}
}

func TestProgramService_CreateProgram(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgramRepository)
	svc := NewProgramService(slog.Default(), repo, nil)

	repo.On("SaveProgram", ctx, mock.MatchedBy(func(p models.Program) bool {
		return p.ID != "" && !p.CreatedAt.IsZero() && p.Goals != nil && p.Title == "Подготовка к школе"
	})).Return(nil).Twice()

	first, err := svc.CreateProgram(ctx, validRequest())
	require.NoError(t, err)
	second, err := svc.CreateProgram(ctx, validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, first.FAQ, 1)
	repo.AssertExpectations(t)
}

func TestProgramService_GetProgram_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgramRepository)
	svc := NewProgramService(slog.Default(), repo, nil)

	repo.On("ProgramByID", ctx, "missing").
		Return(models.Program{}, fmt.Errorf("repo: %w", storage.ErrNotFound)).Once()

	_, err := svc.GetProgram(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProgramNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestProgramService_UpdateProgram_KeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgramRepository)
	svc := NewProgramService(slog.Default(), repo, nil)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.On("ProgramByID", ctx, "p1").Return(models.Program{ID: "p1", CreatedAt: created}, nil).Once()
	repo.On("UpdateProgram", ctx, mock.AnythingOfType("models.Program")).Return(nil).Once()

	req := validRequest()
	req.Title = "Новое название"

	got, err := svc.UpdateProgram(ctx, "p1", req)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "Новое название", got.Title)
	repo.AssertExpectations(t)
}

func TestProgramService_UpdateProgram_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgramRepository)
	svc := NewProgramService(slog.Default(), repo, nil)

	repo.On("ProgramByID", ctx, "nope").Return(models.Program{}, storage.ErrNotFound).Once()

	_, err := svc.UpdateProgram(ctx, "nope", validRequest())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	repo.AssertNotCalled(t, "UpdateProgram", mock.Anything, mock.Anything)
}

func TestProgramService_DeleteProgram(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgramRepository)
	svc := NewProgramService(slog.Default(), repo, nil)

	repo.On("DeleteProgram", ctx, "p1").Return(nil).Once()
	repo.On("DeleteProgram", ctx, "p1").Return(storage.ErrNotFound).Once()

	require.NoError(t, svc.DeleteProgram(ctx, "p1"))
	err := svc.DeleteProgram(ctx, "p1")
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestProgramService_ListPrograms_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgramRepository)
	svc := NewProgramService(slog.Default(), repo, cache.NewMemory(time.Minute))

	stored := []models.Program{{ID: "p1", Title: "Группа"}}
	repo.On("Programs", ctx).Return(stored, nil).Once()

	first, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	second, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	repo.AssertNumberOfCalls(t, "Programs", 1)

	// a mutation drops the cached list
	repo.On("SaveProgram", ctx, mock.Anything).Return(nil).Once()
	_, err = svc.CreateProgram(ctx, validRequest())
	require.NoError(t, err)

	repo.On("Programs", ctx).Return(stored, nil).Once()
	_, err = svc.ListPrograms(ctx)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Programs", 2)
}

func TestProgramService_ListPrograms_RepoFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgramRepository)
	svc := NewProgramService(slog.Default(), repo, nil)

	repo.On("Programs", ctx).Return(nil, errors.New("db down")).Once()

	_, err := svc.ListPrograms(ctx)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
