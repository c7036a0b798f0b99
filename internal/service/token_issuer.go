//go:generate mockery --name TokenIssuer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"errors"
	"time"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer はアプリケーション自身のセッショントークン (JWT) を発行・検証します。
// 認証プロバイダのアクセストークンはクレーム内に内包して持ち回ります。
type TokenIssuer interface {
	Issue(userID uuid.UUID, email, role string, session *model.SupabaseSession) (string, error)
	Verify(tokenString string) (*model.SessionClaims, error)
}

type jwtTokenIssuer struct {
	cfg *config.Config
}

func NewJWTTokenIssuer(cfg *config.Config) TokenIssuer {
	return &jwtTokenIssuer{cfg: cfg}
}

func (i *jwtTokenIssuer) Issue(userID uuid.UUID, email, role string, session *model.SupabaseSession) (string, error) {
	now := time.Now()
	claims := &model.SessionClaims{
		Email:    email,
		Role:     role,
		Supabase: session,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.App.Name,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(i.cfg.JWT.SecretKey))
	if err != nil {
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to generate token", "", err)
	}
	return signedToken, nil
}

func (i *jwtTokenIssuer) Verify(tokenString string) (*model.SessionClaims, error) {
	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(i.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, model.NewAppError("INVALID_TOKEN", "Token is not valid", "", model.ErrUnauthorized)
	}
	return claims, nil
}
