package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"psycenter/internal/domain/models"
)

const settingsTable = "site_settings"

var settingsColumns = []string{
	"id", "phone", "email", "address", "work_schedule", "vk_link", "privacy_policy", "updated_at",
}

type SettingsRepo struct {
	db  *pgxpool.Pool
	sb  sq.StatementBuilderType
	now func() time.Time
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{db: db, sb: builder(), now: time.Now}
}

func scanSettings(row rowScanner) (models.SiteSettings, error) {
	var s models.SiteSettings
	err := row.Scan(
		&s.ID,
		&s.Phone,
		&s.Email,
		&s.Address,
		&s.WorkSchedule,
		&s.VKLink,
		&s.PrivacyPolicy,
		&s.UpdatedAt,
	)
	return s, err
}

// Settings returns the stored singleton or storage.ErrNotFound.
func (r *SettingsRepo) Settings(ctx context.Context) (models.SiteSettings, error) {
	const op = "repository.settings_repository.Settings"

	query, args, err := r.sb.Select(settingsColumns...).
		From(settingsTable).
		Where(sq.Eq{"singleton": true}).
		ToSql()
	if err != nil {
		return models.SiteSettings{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	s, err := scanSettings(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.SiteSettings{}, translate(op, err)
	}

	return s, nil
}

func (r *SettingsRepo) UpsertSettings(ctx context.Context, id string, patch models.SiteSettingsPatch, defaults models.SiteSettings) (models.SiteSettings, error) {
	const op = "repository.settings_repository.UpsertSettings"

	now := r.now().UTC()

	// The insert branch seeds absent fields from defaults; the conflict
	// branch keeps the stored value for every absent field.
	query, args, err := r.sb.Insert(settingsTable).
		Columns(settingsColumns...).
		Values(
			id,
			sq.Expr("COALESCE(?, ?)", patch.Phone, defaults.Phone),
			sq.Expr("COALESCE(?, ?)", patch.Email, defaults.Email),
			sq.Expr("COALESCE(?, ?)", patch.Address, defaults.Address),
			sq.Expr("COALESCE(?, ?)", patch.WorkSchedule, defaults.WorkSchedule),
			sq.Expr("COALESCE(?, ?)", patch.VKLink, defaults.VKLink),
			sq.Expr("COALESCE(?, ?)", patch.PrivacyPolicy, defaults.PrivacyPolicy),
			now,
		).
		Suffix(`ON CONFLICT (singleton) DO UPDATE SET
			phone = COALESCE(?, site_settings.phone),
			email = COALESCE(?, site_settings.email),
			address = COALESCE(?, site_settings.address),
			work_schedule = COALESCE(?, site_settings.work_schedule),
			vk_link = COALESCE(?, site_settings.vk_link),
			privacy_policy = COALESCE(?, site_settings.privacy_policy),
			updated_at = EXCLUDED.updated_at`,
			patch.Phone, patch.Email, patch.Address, patch.WorkSchedule, patch.VKLink, patch.PrivacyPolicy,
		).
		Suffix("RETURNING " + joinColumns(settingsColumns)).
		ToSql()
	if err != nil {
		return models.SiteSettings{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	s, err := scanSettings(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.SiteSettings{}, translate(op, err)
	}

	return s, nil
}
