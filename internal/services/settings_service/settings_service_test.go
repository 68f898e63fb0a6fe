package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"psycenter/internal/domain/models"
	"psycenter/internal/storage"
	"psycenter/internal/storage/cache"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Settings(ctx context.Context) (models.SiteSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, id string, patch models.SiteSettingsPatch, defaults models.SiteSettings) (models.SiteSettings, error) {
	args := m.Called(ctx, id, patch, defaults)
	return args.Get(0).(models.SiteSettings), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestSettingsService_GetSettings_DefaultWhenAbsent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(slog.Default(), repo, nil)

	repo.On("Settings", ctx).Return(models.SiteSettings{}, storage.ErrNotFound).Once()

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSiteSettings(), got)
	repo.AssertNotCalled(t, "UpsertSettings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsService_GetSettings_StoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(slog.Default(), repo, nil)

	repo.On("Settings", ctx).Return(models.SiteSettings{}, errors.New("db down")).Once()

	_, err := svc.GetSettings(ctx)
	assert.Error(t, err)
}

func TestSettingsService_UpdateSettings_PassesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(slog.Default(), repo, cache.NewMemory(time.Minute))

	stored := models.DefaultSiteSettings()
	stored.Phone = "X"

	repo.On("Settings", ctx).Return(models.SiteSettings{}, storage.ErrNotFound).Once()
	repo.On("UpsertSettings", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(p models.SiteSettingsPatch) bool {
		return p.Phone != nil && *p.Phone == "X" && p.Email == nil && p.Address == nil
	}), models.DefaultSiteSettings()).Return(stored, nil).Once()
	repo.On("Settings", ctx).Return(stored, nil).Once()

	before, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSiteSettings().Phone, before.Phone)

	got, err := svc.UpdateSettings(ctx, models.SiteSettingsPatch{Phone: strPtr("X")})
	require.NoError(t, err)
	assert.Equal(t, "X", got.Phone)

	// the cached default was dropped by the write
	after, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "X", after.Phone)
	assert.Equal(t, before.Email, after.Email)

	repo.AssertExpectations(t)
}
