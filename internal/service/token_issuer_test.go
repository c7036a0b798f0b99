// internal/service/token_issuer_test.go
package service

import (
	"testing"
	"time"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuerConfig(ttl time.Duration) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "PathFinder"},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key",
			AccessTokenTTL: ttl,
		},
	}
}

func Test_jwtTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewJWTTokenIssuer(newTestIssuerConfig(15 * time.Minute))
	userID := uuid.New()

	session := &model.SupabaseSession{
		AccessToken:  "provider-access-token",
		RefreshToken: "provider-refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}

	tokenString, err := issuer.Issue(userID, "student@example.com", model.RoleStudent, session)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := issuer.Verify(tokenString)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.Equal(t, "PathFinder", claims.Issuer)
	require.NotNil(t, claims.Supabase)
	assert.Equal(t, "provider-access-token", claims.Supabase.AccessToken)
}

func Test_jwtTokenIssuer_Verify_NoSession(t *testing.T) {
	// セッションなし（signup直後など）のトークンも検証できる
	issuer := NewJWTTokenIssuer(newTestIssuerConfig(15 * time.Minute))
	userID := uuid.New()

	tokenString, err := issuer.Issue(userID, "new@example.com", "", nil)
	require.NoError(t, err)

	claims, err := issuer.Verify(tokenString)
	require.NoError(t, err)
	assert.Nil(t, claims.Supabase)
	assert.Equal(t, "", claims.Role)
}

func Test_jwtTokenIssuer_Verify_InvalidToken(t *testing.T) {
	issuer := NewJWTTokenIssuer(newTestIssuerConfig(15 * time.Minute))

	tests := []struct {
		name        string
		tokenString func() string
	}{
		{
			name:        "異常系: トークンが不正な文字列",
			tokenString: func() string { return "not-a-jwt" },
		},
		{
			name: "異常系: 署名キーが異なる",
			tokenString: func() string {
				other := NewJWTTokenIssuer(&config.Config{
					App: config.AppConfig{Name: "PathFinder"},
					JWT: config.JWTConfig{SecretKey: "another-secret", AccessTokenTTL: 15 * time.Minute},
				})
				token, err := other.Issue(uuid.New(), "user@example.com", model.RoleStudent, nil)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "異常系: 有効期限切れ",
			tokenString: func() string {
				expired := NewJWTTokenIssuer(newTestIssuerConfig(-time.Minute))
				token, err := expired.Issue(uuid.New(), "user@example.com", model.RoleStudent, nil)
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Verify(tt.tokenString())

			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrUnauthorized)
			assert.Nil(t, claims)

			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INVALID_TOKEN", appErr.Detail.Code)
		})
	}
}
