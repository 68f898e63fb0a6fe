package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"psycenter/internal/storage"
	"psycenter/internal/storage/postgresql"
)

type Repository struct {
	Program     *ProgramRepo
	Appointment *AppointmentRepo
	Contact     *ContactRepo
	Newsletter  *NewsletterRepo
	Blog        *BlogRepo
	Settings    *SettingsRepo
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Program:     NewProgramRepository(db),
		Appointment: NewAppointmentRepository(db),
		Contact:     NewContactRepository(db),
		Newsletter:  NewNewsletterRepository(db),
		Blog:        NewBlogRepository(db),
		Settings:    NewSettingsRepository(db),
	}
}

func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// translate maps driver errors onto storage sentinels so services never see
// pgx types.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	case postgresql.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %v", op, storage.ErrAlreadyExists, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func execAffecting(ctx context.Context, db *pgxpool.Pool, op string, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return translate(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
