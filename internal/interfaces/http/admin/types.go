package admin

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
	"github.com/avcve/yakawa-sKitchen/internal/review/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type sessionResponse struct {
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
}

type credentialUpdateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createMonthRequest struct {
	Name string `json:"name"`
}

type updateMonthStatusRequest struct {
	Status string `json:"status"`
}

type updateMonthDetailsRequest struct {
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`
}

type monthResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
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

type statusResponse struct {
	Status string `json:"status"`
}

func (req *loginRequest) validate() error {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return errors.New("ユーザー名とパスワードを入力してください")
	}
	return nil
}

func (req *createMonthRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.New("月の名前を入力してください")
	}
	return nil
}

func (req *updateMonthDetailsRequest) validate() error {
	if req.Description == nil && req.Images == nil {
		return errors.New("更新する項目がありません")
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		if utf8.RuneCountInString(trimmed) > common.MaxMonthDescriptionRunes {
			return errors.New("説明文が長すぎます")
		}
		req.Description = &trimmed
	}
	return nil
}

func (h *Handler) buildMonthResponse(month domain.Month, activeID domain.MonthID) monthResponse {
	return monthResponse{
		ID:          month.ID.String(),
		Name:        month.Name,
		Status:      month.Status.String(),
		Description: month.Description,
		Images:      month.Images.Strings(),
		IsActive:    month.ID == activeID,
		CreatedAt:   month.CreatedAt.In(h.location),
		UpdatedAt:   month.UpdatedAt.In(h.location),
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
