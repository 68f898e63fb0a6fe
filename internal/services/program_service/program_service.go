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
	"psycenter/internal/storage/cache"
	"psycenter/internal/transport/http/dto"
)

var ErrProgramNotFound = apperr.NotFound("Program not found")

type ProgramService struct {
	log   *slog.Logger
	repo  repository.ProgramRepository
	cache cache.Cache
	now   func() time.Time
}

func NewProgramService(log *slog.Logger, repo repository.ProgramRepository, c cache.Cache) *ProgramService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ProgramService{log: log, repo: repo, cache: c, now: time.Now}
}

// ListPrograms serves the public catalogue, from cache when possible.
func (s *ProgramService) ListPrograms(ctx context.Context) ([]models.Program, error) {
	const op = "program_service.ListPrograms"
	log := s.log.With(slog.String("op", op))

	var programs []models.Program
	hit, err := s.cache.Get(ctx, cache.KeyPrograms, &programs)
	if err != nil {
		log.Warn("cache read failed", sl.Err(err))
	}
	if hit {
		return programs, nil
	}

	programs, err = s.repo.Programs(ctx)
	if err != nil {
		log.Error("failed to list programs", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cache.KeyPrograms, programs); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}

	return programs, nil
}

func (s *ProgramService) GetProgram(ctx context.Context, id string) (models.Program, error) {
	const op = "program_service.GetProgram"

	p, err := s.repo.ProgramByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Program{}, fmt.Errorf("%s: %w", op, ErrProgramNotFound)
		}
		s.log.Error("failed to get program", slog.String("op", op), slog.String("program_id", id), sl.Err(err))
		return models.Program{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *ProgramService) CreateProgram(ctx context.Context, req dto.ProgramRequest) (models.Program, error) {
	const op = "program_service.CreateProgram"
	log := s.log.With(slog.String("op", op), slog.String("title", req.Title))

	p := programFromRequest(req)
	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()

	if err := s.repo.SaveProgram(ctx, p); err != nil {
		log.Error("failed to save program", sl.Err(err))
		return models.Program{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, log)
	log.Info("program created", slog.String("program_id", p.ID))

	return p, nil
}

// UpdateProgram replaces every field except id and created_at.
func (s *ProgramService) UpdateProgram(ctx context.Context, id string, req dto.ProgramRequest) (models.Program, error) {
	const op = "program_service.UpdateProgram"
	log := s.log.With(slog.String("op", op), slog.String("program_id", id))

	existing, err := s.GetProgram(ctx, id)
	if err != nil {
		return models.Program{}, fmt.Errorf("%s: %w", op, err)
	}

	p := programFromRequest(req)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateProgram(ctx, p); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Program{}, fmt.Errorf("%s: %w", op, ErrProgramNotFound)
		}
		log.Error("failed to update program", sl.Err(err))
		return models.Program{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, log)
	log.Info("program updated")

	return p, nil
}

func (s *ProgramService) DeleteProgram(ctx context.Context, id string) error {
	const op = "program_service.DeleteProgram"
	log := s.log.With(slog.String("op", op), slog.String("program_id", id))

	if err := s.repo.DeleteProgram(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrProgramNotFound)
		}
		log.Error("failed to delete program", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, log)
	log.Info("program deleted")

	return nil
}

func (s *ProgramService) invalidate(ctx context.Context, log *slog.Logger) {
	if err := s.cache.Delete(ctx, cache.KeyPrograms); err != nil {
		log.Warn("cache invalidation failed", sl.Err(err))
	}
}

func programFromRequest(req dto.ProgramRequest) models.Program {
	goals := req.Goals
	if goals == nil {
		goals = []string{}
	}
	faq := models.FAQ(req.FAQ)
	if faq == nil {
		faq = models.FAQ{}
	}

	return models.Program{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Goals:       goals,
		AgeRange:    req.AgeRange,
		Price:       req.Price,
		Duration:    req.Duration,
		FAQ:         faq,
		ImageURL:    req.ImageURL,
	}
}
