package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// StateStore is the single source of truth for months and reviews within a
// running process. It keeps an in-memory snapshot of both collections and
// mediates every mutation through the repositories: the write is confirmed
// by the backend first, and only then does the snapshot change. On failure
// the snapshot stays at its last-known-good value and the error surfaces to
// the caller; there is no optimistic update and no retry.
type StateStore struct {
	mu            sync.RWMutex
	months        []domain.Month
	reviews       []domain.Review
	activeMonthID domain.MonthID

	monthRepo  MonthRepository
	reviewRepo ReviewRepository
}

var _ MonthService = (*StateStore)(nil)
var _ ReviewService = (*StateStore)(nil)

// NewStateStore binds the store to its persistence ports. Call Load before
// serving traffic.
func NewStateStore(months MonthRepository, reviews ReviewRepository) *StateStore {
	return &StateStore{monthRepo: months, reviewRepo: reviews}
}

// Load performs the startup full scan of both collections and resolves the
// initial active month: the first month marked active, falling back to the
// first month, falling back to none.
func (s *StateStore) Load(ctx context.Context) error {
	months, err := s.monthRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	reviews, err := s.reviewRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.months = months
	s.reviews = reviews
	s.activeMonthID = resolveActiveMonth(months)
	return nil
}

func resolveActiveMonth(months []domain.Month) domain.MonthID {
	for _, m := range months {
		if m.IsActive() {
			return m.ID
		}
	}
	if len(months) > 0 {
		return months[0].ID
	}
	return ""
}

// Months returns a copy of the month snapshot in collection order.
func (s *StateStore) Months() []domain.Month {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Month(nil), s.months...)
}

// ActiveMonth returns the currently selected month. The second result is
// false when no month is selected, which the caller treats as empty state.
func (s *StateStore) ActiveMonth() (domain.Month, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.months {
		if m.ID == s.activeMonthID {
			return m, true
		}
	}
	return domain.Month{}, false
}

// SetActiveMonth moves the selection pointer. Pure session state, nothing is
// persisted.
func (s *StateStore) SetActiveMonth(id domain.MonthID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOfMonth(id) < 0 {
		return ErrNotFound
	}
	s.activeMonthID = id
	return nil
}

// AddMonth derives the slug id from the name and creates an upcoming month
// with empty description and images. Slug collisions are not checked.
func (s *StateStore) AddMonth(ctx context.Context, name string) (*domain.Month, error) {
	id, err := domain.NewMonthID(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	month := domain.Month{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Status:    domain.MonthStatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.monthRepo.Insert(ctx, &month); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.months = append(s.months, month)
	if s.activeMonthID == "" {
		s.activeMonthID = month.ID
	}
	s.mu.Unlock()
	return &month, nil
}

// UpdateMonthStatus persists the transition for that id only. Other months
// are never adjusted, so several months can be active at once when an admin
// forgets to close the previous one.
func (s *StateStore) UpdateMonthStatus(ctx context.Context, id domain.MonthID, status domain.MonthStatus) (*domain.Month, error) {
	s.mu.RLock()
	idx := s.indexOfMonth(id)
	if idx < 0 {
		s.mu.RUnlock()
		return nil, ErrNotFound
	}
	updated := s.months[idx]
	s.mu.RUnlock()

	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()
	if err := s.monthRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if idx = s.indexOfMonth(id); idx >= 0 {
		s.months[idx] = updated
	}
	s.mu.Unlock()
	return &updated, nil
}

// UpdateMonthDetails merges the provided fields into the month; fields left
// nil in the command keep their current value.
func (s *StateStore) UpdateMonthDetails(ctx context.Context, id domain.MonthID, cmd UpdateMonthDetailsCommand) (*domain.Month, error) {
	s.mu.RLock()
	idx := s.indexOfMonth(id)
	if idx < 0 {
		s.mu.RUnlock()
		return nil, ErrNotFound
	}
	updated := s.months[idx]
	s.mu.RUnlock()

	if cmd.Description != nil {
		updated.Description = *cmd.Description
	}
	if cmd.Images != nil {
		images, err := domain.NewImageURLList(*cmd.Images, 0)
		if err != nil {
			return nil, err
		}
		updated.Images = images
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.monthRepo.UpdateDetails(ctx, updated); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if idx = s.indexOfMonth(id); idx >= 0 {
		s.months[idx] = updated
	}
	s.mu.Unlock()
	return &updated, nil
}

// Reviews returns a copy of the review snapshot, newest first.
func (s *StateStore) Reviews() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Review(nil), s.reviews...)
}

// ReviewsForMonth filters the snapshot without reordering it.
func (s *StateStore) ReviewsForMonth(id domain.MonthID) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Review, 0)
	for _, r := range s.reviews {
		if r.MonthID == id {
			result = append(result, r)
		}
	}
	return result
}

// SubmitReview validates the payload, stamps it onto the active month and
// prepends the confirmed review so the snapshot stays newest-first.
func (s *StateStore) SubmitReview(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error) {
	s.mu.RLock()
	monthID := s.activeMonthID
	s.mu.RUnlock()
	if monthID == "" {
		return nil, ErrNoActiveMonth
	}

	rating, err := domain.NewRating(cmd.Rating)
	if err != nil {
		return nil, err
	}
	specifics, err := domain.NewSpecifics(cmd.Taste, cmd.Portion, cmd.Presentation)
	if err != nil {
		return nil, err
	}
	images, err := domain.NewImageURLList(cmd.Images, domain.MaxReviewImages)
	if err != nil {
		return nil, err
	}

	review := domain.Review{
		MonthID:    monthID,
		Nickname:   domain.NewNickname(cmd.Nickname),
		Rating:     rating,
		Specifics:  specifics,
		Love:       strings.TrimSpace(cmd.Love),
		Improve:    strings.TrimSpace(cmd.Improve),
		Images:     images,
		IsFeatured: false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.reviewRepo.Insert(ctx, &review); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.reviews = append([]domain.Review{review}, s.reviews...)
	s.mu.Unlock()
	return &review, nil
}

// ToggleFeatured flips the admin flag. Applying it twice restores the
// original value.
func (s *StateStore) ToggleFeatured(ctx context.Context, id string) (*domain.Review, error) {
	s.mu.RLock()
	idx := s.indexOfReview(id)
	if idx < 0 {
		s.mu.RUnlock()
		return nil, ErrNotFound
	}
	updated := s.reviews[idx]
	s.mu.RUnlock()

	updated.IsFeatured = !updated.IsFeatured
	if err := s.reviewRepo.SetFeatured(ctx, id, updated.IsFeatured); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if idx = s.indexOfReview(id); idx >= 0 {
		s.reviews[idx] = updated
	}
	s.mu.Unlock()
	return &updated, nil
}

// DeleteReview removes exactly one review. Irreversible.
func (s *StateStore) DeleteReview(ctx context.Context, id string) error {
	s.mu.RLock()
	idx := s.indexOfReview(id)
	s.mu.RUnlock()
	if idx < 0 {
		return ErrNotFound
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if idx = s.indexOfReview(id); idx >= 0 {
		s.reviews = append(s.reviews[:idx], s.reviews[idx+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// indexOfMonth expects at least a read lock to be held.
func (s *StateStore) indexOfMonth(id domain.MonthID) int {
	for i, m := range s.months {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// indexOfReview expects at least a read lock to be held.
func (s *StateStore) indexOfReview(id string) int {
	for i, r := range s.reviews {
		if r.ID == id {
			return i
		}
	}
	return -1
}
