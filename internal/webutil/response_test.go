// internal/webutil/response_test.go
package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "ErrNotFound は 404", err: model.ErrNotFound, want: http.StatusNotFound},
		{name: "ErrInvalidInput は 400", err: model.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "ErrUnauthorized は 401", err: model.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "ErrForbidden は 403", err: model.ErrForbidden, want: http.StatusForbidden},
		{name: "ErrConflict は 409", err: model.ErrConflict, want: http.StatusConflict},
		{name: "ErrUpstream は 500", err: model.ErrUpstream, want: http.StatusInternalServerError},
		{name: "未知のエラーは 500", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "AppError はラップされたエラーで判定される",
			err:  model.NewAppError("DUPLICATE_EMAIL", "Email already in use", "email", model.ErrConflict),
			want: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	origEnv := config.Cfg.App.Env
	defer func() { config.Cfg.App.Env = origEnv }()

	t.Run("AppError: メッセージとエラーコードを返す", func(t *testing.T) {
		config.Cfg.App.Env = "dev"
		rr := httptest.NewRecorder()

		HandleError(rr, discardLogger(), model.NewAppError("NOT_FOUND", "Course not found", "", model.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Course not found", resp.Message)
		assert.Equal(t, "NOT_FOUND", resp.Error)
	})

	t.Run("本番環境ではエラーコードを出さない", func(t *testing.T) {
		config.Cfg.App.Env = "production"
		rr := httptest.NewRecorder()

		HandleError(rr, discardLogger(), model.NewAppError("NOT_FOUND", "Course not found", "", model.ErrNotFound))

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Course not found", resp.Message)
		assert.Empty(t, resp.Error)
	})

	t.Run("予期せぬエラーは汎用メッセージで500", func(t *testing.T) {
		config.Cfg.App.Env = "production"
		rr := httptest.NewRecorder()

		HandleError(rr, discardLogger(), errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Server error", resp.Message)
		// 内部のエラー文字列が漏れていないこと
		assert.Empty(t, resp.Error)
	})
}

func TestRespondWithJSON(t *testing.T) {
	t.Run("正常系: ペイロードをそのまま書き出す", func(t *testing.T) {
		rr := httptest.NewRecorder()

		RespondWithJSON(rr, http.StatusCreated, model.MessageResponse{Success: true, Message: "Created"}, discardLogger())

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"success":true,"message":"Created"}`, rr.Body.String())
	})

	t.Run("異常系: シリアライズできないペイロードは500", func(t *testing.T) {
		rr := httptest.NewRecorder()

		RespondWithJSON(rr, http.StatusOK, map[string]interface{}{"fn": func() {}}, discardLogger())

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"success":false,"message":"Failed to generate response"}`, rr.Body.String())
	})
}

func TestValidator_SignupRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       model.SignupRequest
		wantValid bool
	}{
		{
			name: "正常系: すべて妥当",
			req: model.SignupRequest{
				FirstName: "Taro", LastName: "Yamada",
				Email: "taro@example.com", Password: "password123", ConfirmPassword: "password123",
			},
			wantValid: true,
		},
		{
			name: "異常系: パスワードが一致しない",
			req: model.SignupRequest{
				FirstName: "Taro", LastName: "Yamada",
				Email: "taro@example.com", Password: "password123", ConfirmPassword: "other",
			},
		},
		{
			name: "異常系: パスワードが短すぎる",
			req: model.SignupRequest{
				FirstName: "Taro", LastName: "Yamada",
				Email: "taro@example.com", Password: "abc", ConfirmPassword: "abc",
			},
		},
		{
			name: "異常系: メールアドレスの形式が不正",
			req: model.SignupRequest{
				FirstName: "Taro", LastName: "Yamada",
				Email: "not-an-email", Password: "password123", ConfirmPassword: "password123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validator.Struct(tt.req)
			if tt.wantValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
