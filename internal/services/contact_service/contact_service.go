package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/repository"
	"psycenter/internal/transport/http/dto"
)

type ContactService struct {
	log  *slog.Logger
	repo repository.ContactRepository
	now  func() time.Time
}

func NewContactService(log *slog.Logger, repo repository.ContactRepository) *ContactService {
	return &ContactService{log: log, repo: repo, now: time.Now}
}

func (s *ContactService) CreateContact(ctx context.Context, req dto.CreateContactRequest) (models.Contact, error) {
	const op = "contact_service.CreateContact"

	c := models.Contact{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.SaveContact(ctx, c); err != nil {
		s.log.Error("failed to save contact message", slog.String("op", op), sl.Err(err))
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contact message received", slog.String("op", op), slog.String("contact_id", c.ID))

	return c, nil
}

func (s *ContactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	const op = "contact_service.ListContacts"

	list, err := s.repo.Contacts(ctx)
	if err != nil {
		s.log.Error("failed to list contacts", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}
