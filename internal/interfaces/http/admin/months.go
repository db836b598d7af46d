package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	"github.com/avcve/yakawa-sKitchen/internal/review/application"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// monthCreateHandler registers a new month in the upcoming state. The slug
// id is derived from the name server-side.
func (h *Handler) monthCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req createMonthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}
		if err := req.validate(); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		month, err := h.months.AddMonth(ctx, req.Name)
		if err != nil {
			h.logger.Printf("month create failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "月の追加に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, h.buildMonthResponse(*month, h.activeMonthID()))
	}
}

// monthStatusHandler transitions a month between upcoming, active and
// closed. Activating a month also moves the public selection pointer to it,
// matching the dashboard's one-click publish flow. Other months keep their
// stored status untouched.
func (h *Handler) monthStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		id := domain.MonthID(chi.URLParam(r, "id"))

		var req updateMonthStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}
		status, err := domain.NewMonthStatus(req.Status)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "ステータスの値が不正です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		month, err := h.months.UpdateMonthStatus(ctx, id, status)
		if err != nil {
			if errors.Is(err, application.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "月が見つかりません")
				return
			}
			h.logger.Printf("month status update failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "ステータスの更新に失敗しました")
			return
		}

		if status == domain.MonthStatusActive {
			if err := h.months.SetActiveMonth(id); err != nil {
				h.logger.Printf("active month switch failed: %v", err)
			}
		}

		common.WriteJSON(h.logger, w, http.StatusOK, h.buildMonthResponse(*month, h.activeMonthID()))
	}
}

// monthDetailsHandler merges description and image updates into a month.
// Omitted fields keep their stored value.
func (h *Handler) monthDetailsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		id := domain.MonthID(chi.URLParam(r, "id"))

		var req updateMonthDetailsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}
		if err := req.validate(); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		month, err := h.months.UpdateMonthDetails(ctx, id, application.UpdateMonthDetailsCommand{
			Description: req.Description,
			Images:      req.Images,
		})
		if err != nil {
			if errors.Is(err, application.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "月が見つかりません")
				return
			}
			h.logger.Printf("month details update failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "月情報の更新に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, h.buildMonthResponse(*month, h.activeMonthID()))
	}
}

func (h *Handler) activeMonthID() domain.MonthID {
	if month, ok := h.months.ActiveMonth(); ok {
		return month.ID
	}
	return ""
}
