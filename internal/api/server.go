// Package api wires the HTTP surface: event CRUD with image upload, auth
// routes, and the stored-image read path.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/eventboard/events-api/internal/auth"
	"github.com/eventboard/events-api/pkg/events"
	"github.com/eventboard/events-api/pkg/events/urlresolver"
)

// Server holds the handler dependencies.
type Server struct {
	log      *slog.Logger
	service  events.Service
	auth     *auth.Service
	resolver *urlresolver.Resolver
	blobs    events.BlobStore
	tokens   *jwtauth.JWTAuth
	validate *validator.Validate
	metrics  http.Handler
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithMetricsHandler mounts the given handler at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates the HTTP server wrapper.
func NewServer(
	log *slog.Logger,
	service events.Service,
	authService *auth.Service,
	resolver *urlresolver.Resolver,
	blobs events.BlobStore,
	tokens *jwtauth.JWTAuth,
	opts ...ServerOption,
) *Server {
	s := &Server{
		log:      log,
		service:  service,
		auth:     authService,
		resolver: resolver,
		blobs:    blobs,
		tokens:   tokens,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept", "X-Requested-With"},
		AllowCredentials: true,
	}))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/events", s.handleListEvents)
		r.Get("/event/{id}", s.handleGetEvent)
		r.Get("/images/{filename}", s.handleGetImage)

		// Protected routes.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.tokens))
			r.Use(jwtauth.Authenticator)

			r.Get("/auth/me", s.handleMe)
			r.Patch("/auth/me", s.handleUpdateMe)
			r.Post("/event", s.handleCreateEvent)
			r.Delete("/event/{id}", s.handleDeleteEvent)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// detailResponse is the error body shape.
type detailResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	render.Status(r, status)
	render.JSON(w, r, detailResponse{Detail: detail})
}

// renderServiceError maps the domain error taxonomy onto HTTP statuses.
func (s *Server) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, events.ErrUnsupportedMediaType):
		s.renderError(w, r, http.StatusUnsupportedMediaType, "Unsupported file type")
	case errors.Is(err, events.ErrInvalidReference):
		s.renderError(w, r, http.StatusBadRequest, "Invalid organizer_id or city_id provided.")
	case errors.Is(err, events.ErrEventNotFound):
		s.renderError(w, r, http.StatusNotFound, "Event not found")
	case errors.Is(err, events.ErrUploadFailed):
		s.renderError(w, r, http.StatusInternalServerError, "Image upload failed")
	default:
		s.log.Error("request failed", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, err.Error())
	}
}
