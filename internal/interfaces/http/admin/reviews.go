package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// reviewListHandler returns reviews for moderation, newest first. The
// optional monthId query narrows the list to one month.
func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monthID := domain.MonthID(strings.TrimSpace(r.URL.Query().Get("monthId")))

		var reviews []domain.Review
		if monthID != "" {
			reviews = h.reviews.ReviewsForMonth(monthID)
		} else {
			reviews = h.reviews.Reviews()
		}

		items := make([]reviewResponse, 0, len(reviews))
		for _, review := range reviews {
			items = append(items, h.buildReviewResponse(review))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{Items: items})
	}
}

// reviewFeatureToggleHandler flips the featured flag on one review.
func (h *Handler) reviewFeatureToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		review, err := h.reviews.ToggleFeatured(ctx, id)
		if err != nil {
			if errors.Is(err, application.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "レビューが見つかりません")
				return
			}
			h.logger.Printf("featured toggle failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "注目設定の更新に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, h.buildReviewResponse(*review))
	}
}

// reviewDeleteHandler permanently removes one review.
func (h *Handler) reviewDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.reviews.DeleteReview(ctx, id); err != nil {
			if errors.Is(err, application.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "レビューが見つかりません")
				return
			}
			h.logger.Printf("review delete failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "レビューの削除に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, statusResponse{Status: "ok"})
	}
}
