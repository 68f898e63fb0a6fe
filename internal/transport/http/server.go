package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/transport/http/dto"
	"psycenter/internal/transport/http/dto/response"

	_ "psycenter/docs"
)

// AdminContextKey is where the gate stores the authenticated admin username.
const AdminContextKey = "admin"

type AuthService interface {
	Login(ctx context.Context, username, password string) (models.AccessToken, error)
	Verify(ctx context.Context, raw string) (string, error)
}

type ProgramService interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	GetProgram(ctx context.Context, id string) (models.Program, error)
	CreateProgram(ctx context.Context, req dto.ProgramRequest) (models.Program, error)
	UpdateProgram(ctx context.Context, id string, req dto.ProgramRequest) (models.Program, error)
	DeleteProgram(ctx context.Context, id string) error
}

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest) (models.Appointment, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (models.Appointment, error)
}

type ContactService interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest) (models.Contact, error)
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (models.NewsletterSubscription, error)
	ListSubscriptions(ctx context.Context) ([]models.NewsletterSubscription, error)
	Broadcast(ctx context.Context, subject, html string) (models.BroadcastReport, error)
}

type BlogService interface {
	CreatePost(ctx context.Context, req dto.BlogPostRequest) (models.BlogPost, error)
	UpdatePost(ctx context.Context, id string, req dto.BlogPostRequest) (models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
	GetPostByID(ctx context.Context, id string) (models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (models.BlogPost, error)
	ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (models.SiteSettings, error)
	UpdateSettings(ctx context.Context, patch models.SiteSettingsPatch) (models.SiteSettings, error)
}

type Services struct {
	Auth        AuthService
	Programs    ProgramService
	Appointment AppointmentService
	Contacts    ContactService
	Newsletter  NewsletterService
	Blog        BlogService
	Settings    SettingsService
}

type Routers struct {
	log *slog.Logger
	Services
}

func NewRouter(log *slog.Logger, services Services) *Routers {
	return &Routers{
		log:      log,
		Services: services,
	}
}

// Health godoc
// @Summary Проверка работоспособности
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict, apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error envelope for a service error.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
		return c.JSON(status, response.ErrorResponseWithDetails("internal_error", apperr.MessageOf(err)))
	}

	log.Debug("request rejected", sl.Err(err))
	return c.JSON(status, response.ErrorResponseWithDetails(string(kind), apperr.MessageOf(err)))
}

// bind decodes and validates the payload. On failure the 400 response has
// already been written and ok is false.
func (r *Routers) bind(c echo.Context, log *slog.Logger, req interface{}) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return false, c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	return r.validate(c, log, req)
}

func (r *Routers) validate(c echo.Context, log *slog.Logger, req interface{}) (ok bool, err error) {
	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		resp := response.ErrInvalidRequestFormat
		resp.Error = string(apperr.KindValidation)
		resp.Details = err.Error()
		return false, c.JSON(http.StatusBadRequest, resp)
	}

	return true, nil
}
