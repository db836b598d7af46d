package public

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avcve/yakawa-sKitchen/internal/images"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	months   application.MonthService
	reviews  application.ReviewService
	uploads  *images.Service
	location *time.Location
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger   *log.Logger
	Months   application.MonthService
	Reviews  application.ReviewService
	Uploads  *images.Service
	Location *time.Location
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		months:   cfg.Months,
		reviews:  cfg.Reviews,
		uploads:  cfg.Uploads,
		location: cfg.Location,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/months", h.monthListHandler())
	r.Get("/months/active", h.activeMonthHandler())
	r.Get("/months/{id}", h.monthDetailHandler())
	r.Get("/reviews", h.reviewListHandler())
	r.Post("/reviews", h.reviewCreateHandler())
	r.Post("/images", h.imageUploadHandler())
}
