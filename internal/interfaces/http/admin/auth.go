package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avcve/yakawa-sKitchen/internal/auth"
	"github.com/avcve/yakawa-sKitchen/internal/interfaces/http/common"
)

// loginHandler exchanges the credential pair for a session token.
func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}
		if err := req.validate(); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		token, err := h.gate.Login(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				common.WriteError(h.logger, w, http.StatusUnauthorized, "ユーザー名またはパスワードが違います")
				return
			}
			h.logger.Printf("admin login failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "ログインに失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, loginResponse{
			Token:    token,
			Username: h.gate.Username(),
		})
	}
}

// sessionHandler echoes the authenticated principal so the dashboard can
// restore its session after a reload.
func (h *Handler) sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := common.PrincipalFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証が必要です")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, sessionResponse{
			Username: principal.Username,
			IssuedAt: principal.IssuedAt.In(h.location),
		})
	}
}

// credentialUpdateHandler rotates the admin login pair. Existing session
// tokens stay valid until they expire.
func (h *Handler) credentialUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req credentialUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		next := auth.Credentials{Username: req.Username, Password: req.Password}
		if err := h.gate.UpdateCredentials(ctx, next); err != nil {
			if errors.Is(err, auth.ErrWeakCredentials) {
				common.WriteError(h.logger, w, http.StatusBadRequest, "ユーザー名と8文字以上のパスワードを入力してください")
				return
			}
			h.logger.Printf("credential update failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "認証情報の更新に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, statusResponse{Status: "ok"})
	}
}
