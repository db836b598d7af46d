package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	gate     *auth.Gate
	months   application.MonthService
	reviews  application.ReviewService
	location *time.Location
}

// Config provides dependencies for Handler.
type Config struct {
	Logger   *log.Logger
	Gate     *auth.Gate
	Months   application.MonthService
	Reviews  application.ReviewService
	Location *time.Location
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		gate:     cfg.Gate,
		months:   cfg.Months,
		reviews:  cfg.Reviews,
		location: cfg.Location,
	}
}

// Register mounts admin routes onto router. Everything except login sits
// behind the session middleware.
func (h *Handler) Register(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Post("/login", h.loginHandler())
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/session", h.sessionHandler())
		r.Put("/credentials", h.credentialUpdateHandler())
		r.Post("/months", h.monthCreateHandler())
		r.Patch("/months/{id}/status", h.monthStatusHandler())
		r.Patch("/months/{id}", h.monthDetailsHandler())
		r.Get("/reviews", h.reviewListHandler())
		r.Patch("/reviews/{id}/featured", h.reviewFeatureToggleHandler())
		r.Delete("/reviews/{id}", h.reviewDeleteHandler())
	})
}
