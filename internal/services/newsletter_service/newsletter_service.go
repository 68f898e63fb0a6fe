package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/repository"
	"psycenter/internal/services/uniqueness"
)

var ErrAlreadySubscribed = apperr.Conflict("Email already subscribed")

type BulkSender interface {
	SendBulk(ctx context.Context, recipients []string, subject, html string) (models.BroadcastReport, error)
}

type NewsletterService struct {
	log    *slog.Logger
	repo   repository.NewsletterRepository
	sender BulkSender
	now    func() time.Time
}

func NewNewsletterService(log *slog.Logger, repo repository.NewsletterRepository, sender BulkSender) *NewsletterService {
	return &NewsletterService{log: log, repo: repo, sender: sender, now: time.Now}
}

// Subscribe adds an address to the list. A repeat subscription is an error,
// not a no-op.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (models.NewsletterSubscription, error) {
	const op = "newsletter_service.Subscribe"

	email = strings.TrimSpace(email)
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	err := uniqueness.Ensure(ctx, func(ctx context.Context) error {
		_, err := s.repo.SubscriptionByEmail(ctx, email)
		return err
	}, ErrAlreadySubscribed)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			log.Info("email already subscribed")
		} else {
			log.Error("failed to check subscription", sl.Err(err))
		}
		return models.NewsletterSubscription{}, fmt.Errorf("%s: %w", op, err)
	}

	sub := models.NewsletterSubscription{
		ID:           uuid.NewString(),
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}

	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		err = uniqueness.FromStorage(err, ErrAlreadySubscribed)
		if apperr.KindOf(err) != apperr.KindConflict {
			log.Error("failed to save subscription", sl.Err(err))
		}
		return models.NewsletterSubscription{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("newsletter subscription created")

	return sub, nil
}

func (s *NewsletterService) ListSubscriptions(ctx context.Context) ([]models.NewsletterSubscription, error) {
	const op = "newsletter_service.ListSubscriptions"

	subs, err := s.repo.Subscriptions(ctx)
	if err != nil {
		s.log.Error("failed to list subscriptions", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}

// Broadcast mails every subscriber. Individual delivery failures end up in
// the report; only an empty list fails the call.
func (s *NewsletterService) Broadcast(ctx context.Context, subject, html string) (models.BroadcastReport, error) {
	const op = "newsletter_service.Broadcast"
	log := s.log.With(slog.String("op", op), slog.String("subject", subject))

	subs, err := s.ListSubscriptions(ctx)
	if err != nil {
		return models.BroadcastReport{}, fmt.Errorf("%s: %w", op, err)
	}

	recipients := make([]string, 0, len(subs))
	for _, sub := range subs {
		recipients = append(recipients, sub.Email)
	}

	log.Info("starting newsletter broadcast", slog.Int("recipients", len(recipients)))

	report, err := s.sender.SendBulk(ctx, recipients, subject, html)
	if err != nil {
		return models.BroadcastReport{}, fmt.Errorf("%s: %w", op, err)
	}

	return report, nil
}
