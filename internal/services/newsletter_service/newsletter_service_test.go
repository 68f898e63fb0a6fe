package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/services/mailer"
	"psycenter/internal/storage"
)

type MockNewsletterRepository struct {
	mock.Mock
}

func (m *MockNewsletterRepository) SaveSubscription(ctx context.Context, s models.NewsletterSubscription) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockNewsletterRepository) SubscriptionByEmail(ctx context.Context, email string) (models.NewsletterSubscription, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.NewsletterSubscription), args.Error(1)
}

func (m *MockNewsletterRepository) Subscriptions(ctx context.Context) ([]models.NewsletterSubscription, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.NewsletterSubscription), args.Error(1)
}

type MockBulkSender struct {
	mock.Mock
}

func (m *MockBulkSender) SendBulk(ctx context.Context, recipients []string, subject, html string) (models.BroadcastReport, error) {
	args := m.Called(ctx, recipients, subject, html)
	return args.Get(0).(models.BroadcastReport), args.Error(1)
}

func TestNewsletterService_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("first subscription", func(t *testing.T) {
		repo := new(MockNewsletterRepository)
		repo.On("SubscriptionByEmail", ctx, "a@example.com").Return(models.NewsletterSubscription{}, storage.ErrNotFound).Once()
		repo.On("SaveSubscription", ctx, mock.MatchedBy(func(s models.NewsletterSubscription) bool {
			return s.Email == "a@example.com" && s.ID != ""
		})).Return(nil).Once()

		svc := NewNewsletterService(slog.Default(), repo, new(MockBulkSender))
		sub, err := svc.Subscribe(ctx, " a@example.com ")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", sub.Email)
		repo.AssertExpectations(t)
	})

	t.Run("repeat subscription is rejected", func(t *testing.T) {
		repo := new(MockNewsletterRepository)
		repo.On("SubscriptionByEmail", ctx, "a@example.com").Return(models.NewsletterSubscription{ID: "s1"}, nil).Once()

		svc := NewNewsletterService(slog.Default(), repo, new(MockBulkSender))
		_, err := svc.Subscribe(ctx, "a@example.com")
		assert.ErrorIs(t, err, ErrAlreadySubscribed)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		repo.AssertNotCalled(t, "SaveSubscription", mock.Anything, mock.Anything)
	})

	t.Run("lost race maps to the same conflict", func(t *testing.T) {
		repo := new(MockNewsletterRepository)
		repo.On("SubscriptionByEmail", ctx, "a@example.com").Return(models.NewsletterSubscription{}, storage.ErrNotFound).Once()
		repo.On("SaveSubscription", ctx, mock.Anything).Return(fmt.Errorf("repo: %w", storage.ErrAlreadyExists)).Once()

		svc := NewNewsletterService(slog.Default(), repo, new(MockBulkSender))
		_, err := svc.Subscribe(ctx, "a@example.com")
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Equal(t, "Email already subscribed", apperr.MessageOf(err))
	})
}

func TestNewsletterService_Broadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to every subscriber", func(t *testing.T) {
		repo := new(MockNewsletterRepository)
		repo.On("Subscriptions", ctx).Return([]models.NewsletterSubscription{
			{Email: "a@example.com"}, {Email: "b@example.com"},
		}, nil).Once()

		sender := new(MockBulkSender)
		want := models.BroadcastReport{Total: 2, Sent: 1, Failed: 1, FailedEmails: []string{"b@example.com"}}
		sender.On("SendBulk", ctx, []string{"a@example.com", "b@example.com"}, "Новости", "<p>hi</p>").Return(want, nil).Once()

		svc := NewNewsletterService(slog.Default(), repo, sender)
		got, err := svc.Broadcast(ctx, "Новости", "<p>hi</p>")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		sender.AssertExpectations(t)
	})

	t.Run("no subscribers", func(t *testing.T) {
		repo := new(MockNewsletterRepository)
		repo.On("Subscriptions", ctx).Return([]models.NewsletterSubscription{}, nil).Once()

		notifier := mailer.NewNotifier(slog.Default(), nil, 1)
		svc := NewNewsletterService(slog.Default(), repo, notifier)

		_, err := svc.Broadcast(ctx, "s", "b")
		assert.ErrorIs(t, err, mailer.ErrNoRecipients)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
