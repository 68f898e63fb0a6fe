package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"psycenter/internal/domain/models"
)

const programsTable = "programs"

var programColumns = []string{
	"id", "type", "title", "description", "goals", "age_range",
	"price", "duration", "faq", "image_url", "created_at",
}

type ProgramRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewProgramRepository(db *pgxpool.Pool) *ProgramRepo {
	return &ProgramRepo{db: db, sb: builder()}
}

func scanProgram(row rowScanner) (models.Program, error) {
	var p models.Program
	err := row.Scan(
		&p.ID,
		&p.Type,
		&p.Title,
		&p.Description,
		&p.Goals,
		&p.AgeRange,
		&p.Price,
		&p.Duration,
		&p.FAQ,
		&p.ImageURL,
		&p.CreatedAt,
	)
	return p, err
}

func (r *ProgramRepo) SaveProgram(ctx context.Context, p models.Program) error {
	const op = "repository.program_repository.SaveProgram"

	query, args, err := r.sb.Insert(programsTable).
		Columns(programColumns...).
		Values(p.ID, p.Type, p.Title, p.Description, nonNil(p.Goals), p.AgeRange,
			p.Price, p.Duration, p.FAQ, p.ImageURL, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return translate(op, err)
	}

	return nil
}

// UpdateProgram replaces every field except id and created_at.
func (r *ProgramRepo) UpdateProgram(ctx context.Context, p models.Program) error {
	const op = "repository.program_repository.UpdateProgram"

	return execAffecting(ctx, r.db, op, r.sb.Update(programsTable).
		Set("type", p.Type).
		Set("title", p.Title).
		Set("description", p.Description).
		Set("goals", nonNil(p.Goals)).
		Set("age_range", p.AgeRange).
		Set("price", p.Price).
		Set("duration", p.Duration).
		Set("faq", p.FAQ).
		Set("image_url", p.ImageURL).
		Where(sq.Eq{"id": p.ID}))
}

func (r *ProgramRepo) DeleteProgram(ctx context.Context, id string) error {
	const op = "repository.program_repository.DeleteProgram"

	return execAffecting(ctx, r.db, op, r.sb.Delete(programsTable).Where(sq.Eq{"id": id}))
}

func (r *ProgramRepo) ProgramByID(ctx context.Context, id string) (models.Program, error) {
	const op = "repository.program_repository.ProgramByID"

	query, args, err := r.sb.Select(programColumns...).
		From(programsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Program{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	p, err := scanProgram(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Program{}, translate(op, err)
	}

	return p, nil
}

func (r *ProgramRepo) Programs(ctx context.Context) ([]models.Program, error) {
	const op = "repository.program_repository.Programs"

	query, args, err := r.sb.Select(programColumns...).
		From(programsTable).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	programs := make([]models.Program, 0)
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		programs = append(programs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return programs, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
