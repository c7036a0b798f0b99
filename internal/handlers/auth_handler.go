// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"
	"github.com/LrenceLapating/Pathfinder/internal/service"
	"github.com/LrenceLapating/Pathfinder/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service service.AuthService
	cfg     *config.Config
}

func NewAuthHandler(s service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: s, cfg: cfg}
}

// decodeAndValidate は全エンドポイント共通の デコード + バリデーション 処理です。
func (h *AuthHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	logger := middleware.GetLogger(r.Context())

	if err := webutil.DecodeJSONBody(r, logger, dst); err != nil {
		webutil.HandleError(w, logger, err)
		return false
	}

	if err := webutil.Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return false
	}
	return true
}

// Signup は新規ユーザーを登録し、確認メールの送信をトリガーします
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.SignupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		logger.Error("Signup process failed in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// Signin はユーザーを認証し、セッショントークンを返します
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.SigninRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		// サービス層でログは出力済みなので、ここではエラー処理に専念
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GoogleAuth はGoogle OAuth後のアカウント解決を行います
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.GoogleAuthRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.GoogleAuth(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// UpdateProfile はロールの確定と詳細情報の保存を行います
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// VerifyEmail はメール内の確認リンクから呼ばれ、フロントエンドへリダイレクトします
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	tokenHash := r.URL.Query().Get("token_hash")
	if tokenHash == "" {
		tokenHash = r.URL.Query().Get("token")
	}
	if tokenHash == "" {
		logger.Warn("Verification attempt with no token")
		appErr := model.NewAppError("INVALID_REQUEST", "Verification token is required", "token", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With("token_prefix", tokenHash[:min(8, len(tokenHash))]) // トークンの先頭だけログに残す

	resp, err := h.service.VerifyEmail(r.Context(), tokenHash)
	if err != nil {
		logger.Warn("Email verification failed in service", "error", err)
		// ブラウザから直接開かれるリンクなので、エラーもフロントエンドに返す
		redirect := fmt.Sprintf("%s/auth-callback?error=%s", h.cfg.App.FrontendURL, url.QueryEscape("verification_failed"))
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	logger.Info("Email successfully verified")
	redirect := fmt.Sprintf("%s/auth-callback?token=%s&verified=true", h.cfg.App.FrontendURL, url.QueryEscape(resp.Token))
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// ResendVerification は確認メールを再送します
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ResendVerificationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ResendVerification(r.Context(), req.Email); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Verification email sent. Please check your inbox.",
	}, logger)
}

// ForgotPassword はパスワード再設定メールを送ります
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ForgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// ユーザーが存在しない場合でも、セキュリティのために同じ成功メッセージを返す
	webutil.RespondWithJSON(w, http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "If an account exists with this email, a password reset link has been sent.",
	}, logger)
}

// ResetPassword は新しいパスワードへのリセットを実行します
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Password has been reset successfully.",
	}, logger)
}
