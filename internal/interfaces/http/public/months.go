package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

// monthListHandler は月セレクター用に全ての月を登録順で返す。
func (h *Handler) monthListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		activeID := h.activeMonthID()
		months := h.months.Months()
		items := make([]monthResponse, 0, len(months))
		for _, month := range months {
			items = append(items, buildMonthResponse(month, activeID))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, monthListResponse{Items: items})
	}
}

// activeMonthHandler は現在選択中の月を返す。未選択なら 404 を返し、
// フロント側はそれを空状態として扱う。
func (h *Handler) activeMonthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		month, ok := h.months.ActiveMonth()
		if !ok {
			common.WriteError(h.logger, w, http.StatusNotFound, "公開中の月がありません")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildMonthResponse(month, month.ID))
	}
}

// monthDetailHandler はスラッグ指定で 1 件の月を返す。
func (h *Handler) monthDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "月IDが指定されていません")
			return
		}

		activeID := h.activeMonthID()
		for _, month := range h.months.Months() {
			if month.ID == domain.MonthID(idParam) {
				common.WriteJSON(h.logger, w, http.StatusOK, buildMonthResponse(month, activeID))
				return
			}
		}
		common.WriteError(h.logger, w, http.StatusNotFound, "月が見つかりません")
	}
}

func (h *Handler) activeMonthID() domain.MonthID {
	if month, ok := h.months.ActiveMonth(); ok {
		return month.ID
	}
	return ""
}
