package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"psycenter/internal/domain/models"
)

const contactsTable = "contacts"

var contactColumns = []string{"id", "name", "email", "phone", "subject", "message", "created_at"}

type ContactRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{db: db, sb: builder()}
}

func (r *ContactRepo) SaveContact(ctx context.Context, c models.Contact) error {
	const op = "repository.contact_repository.SaveContact"

	query, args, err := r.sb.Insert(contactsTable).
		Columns(contactColumns...).
		Values(c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return translate(op, err)
	}

	return nil
}

func (r *ContactRepo) Contacts(ctx context.Context) ([]models.Contact, error) {
	const op = "repository.contact_repository.Contacts"

	query, args, err := r.sb.Select(contactColumns...).
		From(contactsTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contacts, nil
}
