package public

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

type monthResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	IsActive    bool     `json:"isActive"`
}

type monthListResponse struct {
	Items []monthResponse `json:"items"`
}

type specificsPayload struct {
	Taste        int `json:"taste"`
	Portion      int `json:"portion"`
	Presentation int `json:"presentation"`
}

type reviewResponse struct {
	ID         string           `json:"id"`
	MonthID    string           `json:"monthId"`
	Nickname   string           `json:"nickname"`
	Rating     int              `json:"rating"`
	Specifics  specificsPayload `json:"specifics"`
	Love       string           `json:"love,omitempty"`
	Improve    string           `json:"improve,omitempty"`
	Images     []string         `json:"images,omitempty"`
	IsFeatured bool             `json:"isFeatured"`
	Timestamp  time.Time        `json:"timestamp"`
}

type reviewListResponse struct {
	Items []reviewResponse `json:"items"`
}

type createReviewRequest struct {
	Nickname  string           `json:"nickname"`
	Rating    int              `json:"rating"`
	Specifics specificsPayload `json:"specifics"`
	Love      string           `json:"love"`
	Improve   string           `json:"improve"`
	Images    []string         `json:"images"`
}

type createReviewResponse struct {
	Status string         `json:"status"`
	Review reviewResponse `json:"review"`
}

type imageUploadResponse struct {
	URL string `json:"url"`
}

// validate はバックエンド呼び出しの前に入力を整形・検証する。
func (req *createReviewRequest) validate() error {
	if req.Rating == 0 {
		return errors.New("総合評価を入力してください")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return errors.New("総合評価は1〜5の範囲で入力してください")
	}
	if err := validateSubRating("味", req.Specifics.Taste); err != nil {
		return err
	}
	if err := validateSubRating("量", req.Specifics.Portion); err != nil {
		return err
	}
	if err := validateSubRating("盛り付け", req.Specifics.Presentation); err != nil {
		return err
	}
	if len(req.Images) > domain.MaxReviewImages {
		return fmt.Errorf("写真は最大%d枚までです", domain.MaxReviewImages)
	}

	req.Nickname = strings.TrimSpace(req.Nickname)
	req.Love = strings.TrimSpace(req.Love)
	req.Improve = strings.TrimSpace(req.Improve)
	if utf8.RuneCountInString(req.Love) > common.MaxFreeTextRunes {
		return fmt.Errorf("「良かった点」は%d文字以内で入力してください", common.MaxFreeTextRunes)
	}
	if utf8.RuneCountInString(req.Improve) > common.MaxFreeTextRunes {
		return fmt.Errorf("「改善してほしい点」は%d文字以内で入力してください", common.MaxFreeTextRunes)
	}
	return nil
}

func validateSubRating(label string, value int) error {
	if value < 0 || value > 5 {
		return fmt.Errorf("%sの評価は0〜5の範囲で入力してください", label)
	}
	return nil
}

func buildMonthResponse(month domain.Month, activeID domain.MonthID) monthResponse {
	return monthResponse{
		ID:          month.ID.String(),
		Name:        month.Name,
		Status:      month.Status.String(),
		Description: month.Description,
		Images:      month.Images.Strings(),
		IsActive:    month.ID == activeID,
	}
}

func (h *Handler) buildReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:       review.ID,
		MonthID:  review.MonthID.String(),
		Nickname: review.Nickname.String(),
		Rating:   review.Rating.Int(),
		Specifics: specificsPayload{
			Taste:        review.Specifics.Taste.Int(),
			Portion:      review.Specifics.Portion.Int(),
			Presentation: review.Specifics.Presentation.Int(),
		},
		Love:       review.Love,
		Improve:    review.Improve,
		Images:     review.Images.Strings(),
		IsFeatured: review.IsFeatured,
		Timestamp:  review.CreatedAt.In(h.location),
	}
}
