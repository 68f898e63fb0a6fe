package repository

import (
	"context"

	"psycenter/internal/domain/models"
)

// Lookups return storage.ErrNotFound for a missing record, inserts return
// storage.ErrAlreadyExists when a unique index rejects the row.

type ProgramRepository interface {
	SaveProgram(ctx context.Context, program models.Program) error
	UpdateProgram(ctx context.Context, program models.Program) error
	DeleteProgram(ctx context.Context, id string) error
	ProgramByID(ctx context.Context, id string) (models.Program, error)
	Programs(ctx context.Context) ([]models.Program, error)
}

type AppointmentRepository interface {
	SaveAppointment(ctx context.Context, appointment models.Appointment) error
	AppointmentByID(ctx context.Context, id string) (models.Appointment, error)
	Appointments(ctx context.Context) ([]models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (models.Appointment, error)
}

type ContactRepository interface {
	SaveContact(ctx context.Context, contact models.Contact) error
	Contacts(ctx context.Context) ([]models.Contact, error)
}

type NewsletterRepository interface {
	SaveSubscription(ctx context.Context, sub models.NewsletterSubscription) error
	SubscriptionByEmail(ctx context.Context, email string) (models.NewsletterSubscription, error)
	Subscriptions(ctx context.Context) ([]models.NewsletterSubscription, error)
}

type BlogRepository interface {
	SaveBlogPost(ctx context.Context, post models.BlogPost) error
	UpdateBlogPost(ctx context.Context, post models.BlogPost) error
	DeleteBlogPost(ctx context.Context, id string) error
	BlogPostByID(ctx context.Context, id string) (models.BlogPost, error)
	BlogPostBySlug(ctx context.Context, slug string) (models.BlogPost, error)
	BlogPosts(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error)
}

type SettingsRepository interface {
	Settings(ctx context.Context) (models.SiteSettings, error)
	// UpsertSettings creates the singleton from defaults overlaid with patch,
	// or merges patch into the existing record, in one statement.
	UpsertSettings(ctx context.Context, id string, patch models.SiteSettingsPatch, defaults models.SiteSettings) (models.SiteSettings, error)
}
