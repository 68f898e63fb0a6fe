package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/repository"
	"psycenter/internal/storage"
	"psycenter/internal/storage/cache"
)

type SettingsService struct {
	log   *slog.Logger
	repo  repository.SettingsRepository
	cache cache.Cache
}

func NewSettingsService(log *slog.Logger, repo repository.SettingsRepository, c cache.Cache) *SettingsService {
	if c == nil {
		c = cache.Nop{}
	}
	return &SettingsService{log: log, repo: repo, cache: c}
}

// GetSettings returns the saved settings or the built-in defaults. Reading
// never creates the record.
func (s *SettingsService) GetSettings(ctx context.Context) (models.SiteSettings, error) {
	const op = "settings_service.GetSettings"
	log := s.log.With(slog.String("op", op))

	var settings models.SiteSettings
	hit, err := s.cache.Get(ctx, cache.KeySettings, &settings)
	if err != nil {
		log.Warn("cache read failed", sl.Err(err))
	}
	if hit {
		return settings, nil
	}

	settings, err = s.repo.Settings(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		settings = models.DefaultSiteSettings()
	case err != nil:
		log.Error("failed to load settings", sl.Err(err))
		return models.SiteSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cache.KeySettings, settings); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}

	return settings, nil
}

// UpdateSettings merges the present fields into the singleton, creating it
// on first write.
func (s *SettingsService) UpdateSettings(ctx context.Context, patch models.SiteSettingsPatch) (models.SiteSettings, error) {
	const op = "settings_service.UpdateSettings"
	log := s.log.With(slog.String("op", op))

	settings, err := s.repo.UpsertSettings(ctx, uuid.NewString(), patch, models.DefaultSiteSettings())
	if err != nil {
		log.Error("failed to save settings", sl.Err(err))
		return models.SiteSettings{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Delete(ctx, cache.KeySettings); err != nil {
		log.Warn("cache invalidation failed", sl.Err(err))
	}

	log.Info("site settings updated")

	return settings, nil
}
