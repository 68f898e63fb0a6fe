package postgresql

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// uniqueViolation is the SQLSTATE raised when a unique index rejects a row.
const uniqueViolation = "23505"

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Stop() {
	s.db.Close()
}

// Migrate applies the embedded goose migrations. It is safe to call on an
// already migrated database.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	sqlDB := stdlib.OpenDB(*s.db.Config().ConnConfig)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsUniqueViolation reports whether err was raised by a unique index.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
