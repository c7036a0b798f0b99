// internal/middleware/auth_test.go
package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newAuthTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: 15 * time.Minute},
	}
}

// signTestToken はテスト用のセッショントークンを署名します
func signTestToken(t *testing.T, secret string, claims *model.SessionClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func defaultClaims(userID uuid.UUID, role string, expiresIn time.Duration) *model.SessionClaims {
	return &model.SessionClaims{
		Email: "taro@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	// 検証対象のミドルウェアをコンテキストを検査するハンドラで包む
	newProtectedHandler := func(t *testing.T) (http.Handler, *bool) {
		called := false
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			gotID, err := middleware.GetUserIDFromContext(r.Context())
			assert.NoError(t, err)
			assert.Equal(t, userID, gotID)
			assert.Equal(t, model.RoleStudent, middleware.GetUserRoleFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})
		return middleware.JWTAuthMiddleware(newAuthTestConfig())(inner), &called
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "正常系: 有効なトークンでユーザーIDとロールがコンテキストに入る",
			authHeader: "Bearer " + signTestToken(t, testSecret, defaultClaims(userID, model.RoleStudent, 15*time.Minute)),
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "異常系: Authorizationヘッダーがない",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "異常系: Bearer形式でない",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "異常系: 署名キーが異なる",
			authHeader: "Bearer " + signTestToken(t, "wrong-secret", defaultClaims(userID, model.RoleStudent, 15*time.Minute)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "異常系: 有効期限切れ",
			authHeader: "Bearer " + signTestToken(t, testSecret, defaultClaims(userID, model.RoleStudent, -time.Minute)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "異常系: subjectがUUIDでない",
			authHeader: "Bearer " + signTestToken(t, testSecret, &model.SessionClaims{
				Role: model.RoleStudent,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "not-a-uuid",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
				},
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, called := newProtectedHandler(t)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, *called)

			if tt.wantStatus == http.StatusUnauthorized {
				var resp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := middleware.GetUserIDFromContext(req.Context())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInternalServer)
}
