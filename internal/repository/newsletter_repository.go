package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"psycenter/internal/domain/models"
)

const newsletterTable = "newsletter_subscriptions"

type NewsletterRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewNewsletterRepository(db *pgxpool.Pool) *NewsletterRepo {
	return &NewsletterRepo{db: db, sb: builder()}
}

// SaveSubscription fails with storage.ErrAlreadyExists when the email is
// already on the list.
func (r *NewsletterRepo) SaveSubscription(ctx context.Context, s models.NewsletterSubscription) error {
	const op = "repository.newsletter_repository.SaveSubscription"

	query, args, err := r.sb.Insert(newsletterTable).
		Columns("id", "email", "subscribed_at").
		Values(s.ID, s.Email, s.SubscribedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return translate(op, err)
	}

	return nil
}

func (r *NewsletterRepo) SubscriptionByEmail(ctx context.Context, email string) (models.NewsletterSubscription, error) {
	const op = "repository.newsletter_repository.SubscriptionByEmail"

	query, args, err := r.sb.Select("id", "email", "subscribed_at").
		From(newsletterTable).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return models.NewsletterSubscription{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var s models.NewsletterSubscription
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Email, &s.SubscribedAt); err != nil {
		return models.NewsletterSubscription{}, translate(op, err)
	}

	return s, nil
}

func (r *NewsletterRepo) Subscriptions(ctx context.Context) ([]models.NewsletterSubscription, error) {
	const op = "repository.newsletter_repository.Subscriptions"

	query, args, err := r.sb.Select("id", "email", "subscribed_at").
		From(newsletterTable).
		OrderBy("subscribed_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	subs := make([]models.NewsletterSubscription, 0)
	for rows.Next() {
		var s models.NewsletterSubscription
		if err := rows.Scan(&s.ID, &s.Email, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}
