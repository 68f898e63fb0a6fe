package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "psycenter/internal/app/http"
	"psycenter/internal/config"
	"psycenter/internal/lib/jwt"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/repository"
	appointmentsvc "psycenter/internal/services/appointment_service"
	"psycenter/internal/services/auth"
	blogsvc "psycenter/internal/services/blog_service"
	contactsvc "psycenter/internal/services/contact_service"
	"psycenter/internal/services/mailer"
	newslettersvc "psycenter/internal/services/newsletter_service"
	programsvc "psycenter/internal/services/program_service"
	settingssvc "psycenter/internal/services/settings_service"
	"psycenter/internal/storage/cache"
	"psycenter/internal/storage/postgresql"
	redisstore "psycenter/internal/storage/redis"
	httprouters "psycenter/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisstore.Client
}

// New connects the storage, applies migrations and assembles the services
// behind the HTTP server. Routes still have to be built by the caller.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{log: log, storage: storage}

	var c cache.Cache
	if cfg.Redis.RedisAddr != "" {
		rdb, err := redisstore.Connect(ctx, cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, falling back to in-memory cache", sl.Err(err))
			c = cache.NewMemory(cfg.Cache.TTL)
		} else {
			a.redis = rdb
			c = cache.NewRedis(rdb, cfg.Cache.TTL)
		}
	} else {
		c = cache.NewMemory(cfg.Cache.TTL)
	}

	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TokenTTL)
	if err != nil {
		a.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authService, err := auth.New(log, cfg.Admin, tokens)
	if err != nil {
		a.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())

	programs := programsvc.NewProgramService(log, repo.Program, c)

	routers := httprouters.NewRouter(log, httprouters.Services{
		Auth:        authService,
		Programs:    programs,
		Appointment: appointmentsvc.NewAppointmentService(log, repo.Appointment, repo.Program),
		Contacts:    contactsvc.NewContactService(log, repo.Contact),
		Newsletter:  newslettersvc.NewNewsletterService(log, repo.Newsletter, mailer.New(log, cfg.Mail)),
		Blog:        blogsvc.NewBlogService(log, repo.Blog),
		Settings:    settingssvc.NewSettingsService(log, repo.Settings, c),
	})

	a.HTTPServer = httpapp.New(log, cfg.HTTP, authService, routers)

	return a, nil
}

// Stop releases the storage connections. The HTTP server is stopped
// separately so in-flight requests can drain first.
func (a *App) Stop() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", sl.Err(err))
		}
	}

	a.storage.Stop()
}
