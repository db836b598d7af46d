package application

import (
	"context"
	"errors"

	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// ErrNotFound is returned when a mutation targets an id absent from the
// collection. Persistence adapters translate their own not-found errors into
// this sentinel so callers never depend on the storage driver.
var ErrNotFound = errors.New("not found")

// ErrNoActiveMonth is returned when a review is submitted while no month is
// selected, the empty-state of a freshly provisioned deployment.
var ErrNoActiveMonth = errors.New("no active month accepts submissions")

// MonthRepository abstracts durable storage for months.
type MonthRepository interface {
	FindAll(ctx context.Context) ([]domain.Month, error)
	Insert(ctx context.Context, month *domain.Month) error
	UpdateStatus(ctx context.Context, id domain.MonthID, status domain.MonthStatus) error
	UpdateDetails(ctx context.Context, month domain.Month) error
}

// ReviewRepository abstracts durable storage for reviews. FindAll returns
// newest first; Insert assigns the backend id.
type ReviewRepository interface {
	FindAll(ctx context.Context) ([]domain.Review, error)
	Insert(ctx context.Context, review *domain.Review) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	Delete(ctx context.Context, id string) error
}

// SubmitReviewCommand captures a visitor submission. The month is implicit:
// reviews always land on the currently active month.
type SubmitReviewCommand struct {
	Nickname     string
	Rating       int
	Taste        int
	Portion      int
	Presentation int
	Love         string
	Improve      string
	Images       []string
}

// UpdateMonthDetailsCommand is a partial merge; nil fields are retained.
type UpdateMonthDetailsCommand struct {
	Description *string
	Images      *[]string
}

// MonthService describes month use-cases exposed to the HTTP layer.
type MonthService interface {
	Months() []domain.Month
	ActiveMonth() (domain.Month, bool)
	SetActiveMonth(id domain.MonthID) error
	AddMonth(ctx context.Context, name string) (*domain.Month, error)
	UpdateMonthStatus(ctx context.Context, id domain.MonthID, status domain.MonthStatus) (*domain.Month, error)
	UpdateMonthDetails(ctx context.Context, id domain.MonthID, cmd UpdateMonthDetailsCommand) (*domain.Month, error)
}

// ReviewService describes review use-cases exposed to the HTTP layer.
type ReviewService interface {
	Reviews() []domain.Review
	ReviewsForMonth(id domain.MonthID) []domain.Review
	SubmitReview(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error)
	ToggleFeatured(ctx context.Context, id string) (*domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
}
