package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"psycenter/internal/config"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/logger/sl"
	mw "psycenter/internal/middleware"
	httprouters "psycenter/internal/transport/http"
	"psycenter/internal/transport/http/dto/response"
)

// TokenVerifier resolves a raw bearer token to the admin username.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// Route is one entry of the API table. Auth routes only run behind the
// bearer token gate.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Auth    bool
}

type Server struct {
	m        *http.ServeMux
	log      *slog.Logger
	e        *echo.Echo
	routers  *httprouters.Routers
	verifier TokenVerifier
	host     string
	port     string
}

func New(log *slog.Logger, cfg config.HTTPConfig, verifier TokenVerifier, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Validator = httprouters.NewValidator()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Recover())
	e.Use(mw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Warn("statsviz start with error", sl.Err(err))
	}

	return &Server{
		m:        mux,
		log:      log,
		e:        e,
		routers:  routers,
		verifier: verifier,
		host:     cfg.Host,
		port:     cfg.Port,
	}
}

// Routes is the API table mounted under /api.
func (s *Server) Routes() []Route {
	r := s.routers

	return []Route{
		{http.MethodPost, "/admin/login", r.Login, false},
		{http.MethodGet, "/admin/verify", r.VerifyToken, true},

		{http.MethodGet, "/programs", r.ListPrograms, false},
		{http.MethodGet, "/programs/:id", r.GetProgram, false},
		{http.MethodPost, "/programs", r.CreateProgram, true},
		{http.MethodPut, "/programs/:id", r.UpdateProgram, true},
		{http.MethodDelete, "/programs/:id", r.DeleteProgram, true},

		{http.MethodGet, "/appointments", r.ListAppointments, true},
		{http.MethodPost, "/appointments", r.CreateAppointment, false},
		{http.MethodPut, "/appointments/:id/status", r.UpdateAppointmentStatus, true},

		{http.MethodGet, "/contacts", r.ListContacts, true},
		{http.MethodPost, "/contacts", r.CreateContact, false},

		{http.MethodGet, "/newsletter", r.ListSubscriptions, true},
		{http.MethodPost, "/newsletter", r.Subscribe, false},
		{http.MethodPost, "/newsletter/send", r.Broadcast, true},

		{http.MethodGet, "/blog", r.ListPosts, false},
		{http.MethodGet, "/blog/id/:id", r.GetPostByID, false},
		{http.MethodGet, "/blog/:slug", r.GetPostBySlug, false},
		{http.MethodPost, "/blog", r.CreatePost, true},
		{http.MethodPut, "/blog/:id", r.UpdatePost, true},
		{http.MethodDelete, "/blog/:id", r.DeletePost, true},

		{http.MethodGet, "/settings", r.GetSettings, false},
		{http.MethodPut, "/settings", r.UpdateSettings, true},
	}
}

// Gate rejects requests without a valid admin bearer token and stores the
// admin username in the context.
func (s *Server) Gate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: httprouters.AdminContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return s.verifier.Verify(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			details := "Not authenticated"
			if apperr.KindOf(err) == apperr.KindUnauthenticated {
				details = apperr.MessageOf(err)
			}

			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails(string(apperr.KindUnauthenticated), details))
		},
	})
}

func (s *Server) BuildRouters() {
	gate := s.Gate()

	api := s.e.Group("/api")
	for _, rt := range s.Routes() {
		var mws []echo.MiddlewareFunc
		if rt.Auth {
			mws = append(mws, gate)
		}
		api.Add(rt.Method, rt.Path, rt.Handler, mws...)
	}

	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}
}

// Handler exposes the router for in-process use.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", net.JoinHostPort(s.host, s.port)))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(net.JoinHostPort(s.host, s.port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "http.Server.Stop"

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefully: %w", op, err)
	}

	return nil
}
