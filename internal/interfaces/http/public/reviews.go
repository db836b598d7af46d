package public

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/avcve/yakawa-sKitchen/internal/images"
	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// reviewListHandler は指定月のレビューを返す。注目レビューを先頭へ寄せ、
// 残りは新しい順のまま保つ。monthId 未指定時は選択中の月を使う。
func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monthID := domain.MonthID(strings.TrimSpace(r.URL.Query().Get("monthId")))
		if monthID == "" {
			monthID = h.activeMonthID()
		}
		if monthID == "" {
			common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{Items: []reviewResponse{}})
			return
		}

		reviews := h.reviews.ReviewsForMonth(monthID)
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].IsFeatured && !reviews[j].IsFeatured
		})

		items := make([]reviewResponse, 0, len(reviews))
		for _, review := range reviews {
			items = append(items, h.buildReviewResponse(review))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{Items: items})
	}
}

// reviewCreateHandler は訪問者のレビュー投稿を受け付ける。投稿先の月は
// クライアントが選ぶのではなく、常に受付中の月になる。
func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req createReviewRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, common.MaxReviewRequestBody))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("リクエストの形式が不正です: %v", err))
			return
		}

		if err := req.validate(); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		cmd := application.SubmitReviewCommand{
			Nickname:     req.Nickname,
			Rating:       req.Rating,
			Taste:        req.Specifics.Taste,
			Portion:      req.Specifics.Portion,
			Presentation: req.Specifics.Presentation,
			Love:         req.Love,
			Improve:      req.Improve,
			Images:       req.Images,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		created, err := h.reviews.SubmitReview(ctx, cmd)
		if err != nil {
			if errors.Is(err, application.ErrNoActiveMonth) {
				common.WriteError(h.logger, w, http.StatusConflict, "現在レビューを受け付けている月がありません")
				return
			}
			h.logger.Printf("レビューの保存に失敗: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "レビューの保存に失敗しました。時間をおいて再度お試しください")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, createReviewResponse{
			Status: "ok",
			Review: h.buildReviewResponse(*created),
		})
	}
}

// imageUploadHandler はレビュー用写真を 1 枚ずつ受け取り、公開URLを返す。
// 枚数制限は投稿時に課すため、ここではサイズのみ確認する。
func (h *Handler) imageUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxImageUploadBytes)
		if err := r.ParseMultipartForm(common.MaxImageUploadBytes); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "アップロードの形式が不正です")
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "画像ファイルを指定してください")
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		url, err := h.uploads.Upload(ctx, file)
		if err != nil {
			if errors.Is(err, images.ErrNotConfigured) {
				common.WriteError(h.logger, w, http.StatusServiceUnavailable, "画像アップロードは現在利用できません")
				return
			}
			h.logger.Printf("画像のアップロードに失敗: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "画像のアップロードに失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, imageUploadResponse{URL: url})
	}
}
