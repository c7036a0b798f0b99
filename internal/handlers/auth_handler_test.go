// internal/handlers/auth_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/handlers"
	"github.com/LrenceLapating/Pathfinder/internal/model"
	servicemocks "github.com/LrenceLapating/Pathfinder/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "PathFinder",
			Env:         "test",
			FrontendURL: "http://localhost:3000",
		},
	}
}

// newAuthRouter は AuthHandler のルートだけを持つテスト用ルーターを組み立てます
func newAuthRouter(mockService *servicemocks.AuthService, userID uuid.UUID) *chi.Mux {
	handler := handlers.NewAuthHandler(mockService, newAuthTestConfig())

	router := chi.NewRouter()
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", handler.Signup)
		r.Post("/signin", handler.Signin)
		r.Post("/google", handler.GoogleAuth)
		r.Get("/verify-email", handler.VerifyEmail)
		r.Post("/resend-verification", handler.ResendVerification)
		r.Post("/forgot-password", handler.ForgotPassword)
		r.Post("/reset-password", handler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(testAuthMiddleware(userID, model.RoleStudent))
			r.Post("/profile", handler.UpdateProfile)
		})
	})
	return router
}

func TestAuthHandler_Signup(t *testing.T) {
	userID := uuid.New()

	validBody := model.SignupRequest{
		FirstName:       "Taro",
		LastName:        "Yamada",
		Email:           "taro@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(m *servicemocks.AuthService)
		wantStatus int
		checkBody  func(t *testing.T, body []byte)
	}{
		{
			name: "正常系: 201とトークンを返す",
			body: validBody,
			setupMock: func(m *servicemocks.AuthService) {
				m.On("Signup", mock.Anything, mock.AnythingOfType("*model.SignupRequest")).
					Return(&model.AuthResponse{
						Success:              true,
						Message:              "Registration successful! Please check your email to verify your account.",
						Token:                "signed-token",
						RequiresVerification: true,
						User:                 &model.AuthUser{ID: userID.String(), Email: validBody.Email},
					}, nil).Once()
			},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body []byte) {
				var resp model.AuthResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.True(t, resp.Success)
				assert.True(t, resp.RequiresVerification)
				assert.Equal(t, "signed-token", resp.Token)
			},
		},
		{
			name: "異常系: パスワード確認が一致しない",
			body: model.SignupRequest{
				FirstName:       "Taro",
				LastName:        "Yamada",
				Email:           "taro@example.com",
				Password:        "password123",
				ConfirmPassword: "different",
			},
			setupMock:  func(m *servicemocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "異常系: メールアドレスの形式が不正",
			body:       map[string]string{"firstName": "Taro", "lastName": "Yamada", "email": "not-an-email", "password": "password123", "confirmPassword": "password123"},
			setupMock:  func(m *servicemocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "異常系: ボディがJSONとして壊れている",
			body:       `{"firstName": `,
			setupMock:  func(m *servicemocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "異常系: メールアドレスが重複している",
			body: validBody,
			setupMock: func(m *servicemocks.AuthService) {
				m.On("Signup", mock.Anything, mock.AnythingOfType("*model.SignupRequest")).
					Return(nil, model.NewAppError("DUPLICATE_EMAIL", "An account with this email already exists", "email", model.ErrConflict)).Once()
			},
			wantStatus: http.StatusConflict,
			checkBody: func(t *testing.T, body []byte) {
				var resp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.False(t, resp.Success)
				assert.Equal(t, "An account with this email already exists", resp.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(servicemocks.AuthService)
			tt.setupMock(mockService)
			router := newAuthRouter(mockService, userID)

			rr := executeRequest(router, createRequest(t, http.MethodPost, "/api/auth/signup", tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.checkBody != nil {
				tt.checkBody(t, rr.Body.Bytes())
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(m *servicemocks.AuthService)
		wantStatus int
	}{
		{
			name: "正常系: 200とトークンを返す",
			body: model.SigninRequest{Email: "taro@example.com", Password: "password123"},
			setupMock: func(m *servicemocks.AuthService) {
				m.On("Signin", mock.Anything, mock.AnythingOfType("*model.SigninRequest")).
					Return(&model.AuthResponse{Success: true, Token: "signed-token"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "異常系: 資格情報が不正なら401",
			body: model.SigninRequest{Email: "taro@example.com", Password: "wrong"},
			setupMock: func(m *servicemocks.AuthService) {
				m.On("Signin", mock.Anything, mock.AnythingOfType("*model.SigninRequest")).
					Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password", "", model.ErrUnauthorized)).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "異常系: パスワード未入力は400",
			body:       map[string]string{"email": "taro@example.com"},
			setupMock:  func(m *servicemocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(servicemocks.AuthService)
			tt.setupMock(mockService)
			router := newAuthRouter(mockService, userID)

			rr := executeRequest(router, createRequest(t, http.MethodPost, "/api/auth/signin", tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if rr.Code >= 400 {
				resp := decodeErrorResponse(t, rr)
				assert.False(t, resp.Success)
				assert.NotEmpty(t, resp.Message)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 成功したらトークン付きでフロントエンドへリダイレクトする", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		mockService.On("VerifyEmail", mock.Anything, "valid-token-hash").
			Return(&model.AuthResponse{Success: true, Token: "signed-token"}, nil).Once()
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodGet, "/api/auth/verify-email?token_hash=valid-token-hash", nil))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		location := rr.Header().Get("Location")
		assert.Contains(t, location, "http://localhost:3000/auth-callback")
		assert.Contains(t, location, "token=signed-token")
		assert.Contains(t, location, "verified=true")
		mockService.AssertExpectations(t)
	})

	t.Run("正常系: token_hash が無ければ token クエリを使う", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		mockService.On("VerifyEmail", mock.Anything, "fallback-token").
			Return(&model.AuthResponse{Success: true, Token: "signed-token"}, nil).Once()
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodGet, "/api/auth/verify-email?token=fallback-token", nil))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 検証失敗でもエラーページへリダイレクトする", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		mockService.On("VerifyEmail", mock.Anything, "expired-token").
			Return(nil, model.NewAppError("INVALID_TOKEN", "Verification link is invalid or has expired", "", model.ErrInvalidInput)).Once()
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodGet, "/api/auth/verify-email?token_hash=expired-token", nil))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Contains(t, rr.Header().Get("Location"), "error=verification_failed")
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: トークンが無ければ400", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodGet, "/api/auth/verify-email", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "VerifyEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: ロールと詳細を更新する", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		mockService.On("UpdateProfile", mock.Anything, userID, mock.AnythingOfType("*model.UpdateProfileRequest")).
			Return(&model.AuthResponse{
				Success: true,
				Message: "Profile updated successfully",
				Token:   "reissued-token",
				User:    &model.AuthUser{ID: userID.String(), Role: model.RoleStudent},
			}, nil).Once()
		router := newAuthRouter(mockService, userID)

		body := model.UpdateProfileRequest{
			Role:           model.RoleStudent,
			StudentDetails: &model.StudentDetails{Grade: "Grade 10", Subjects: []string{"Math"}},
		}
		rr := executeRequest(router, createRequest(t, http.MethodPost, "/api/auth/profile", body))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp model.AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "reissued-token", resp.Token)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: ロールが不正な値なら400", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodPost, "/api/auth/profile", map[string]string{"role": "admin"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_PasswordFlows(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: forgot-passwordは常に同じ成功メッセージを返す", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		mockService.On("ForgotPassword", mock.Anything, "taro@example.com").Return(nil).Once()
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodPost, "/api/auth/forgot-password",
			model.ForgotPasswordRequest{Email: "taro@example.com"}))

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp model.MessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "If an account exists with this email, a password reset link has been sent.", resp.Message)
		mockService.AssertExpectations(t)
	})

	t.Run("正常系: reset-passwordが成功メッセージを返す", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		mockService.On("ResetPassword", mock.Anything, mock.AnythingOfType("*model.ResetPasswordRequest")).
			Return(nil).Once()
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodPost, "/api/auth/reset-password",
			model.ResetPasswordRequest{Token: "recovery-token", Password: "newPassword123"}))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: resend-verificationで未登録メールは404", func(t *testing.T) {
		mockService := new(servicemocks.AuthService)
		mockService.On("ResendVerification", mock.Anything, "unknown@example.com").
			Return(model.NewAppError("NOT_FOUND", "No account found with this email", "email", model.ErrNotFound)).Once()
		router := newAuthRouter(mockService, userID)

		rr := executeRequest(router, createRequest(t, http.MethodPost, "/api/auth/resend-verification",
			model.ResendVerificationRequest{Email: "unknown@example.com"}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Equal(t, "No account found with this email", resp.Message)
		mockService.AssertExpectations(t)
	})
}
