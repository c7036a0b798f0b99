// internal/model/auth.go
package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	UserIDKey   ContextKey = "userID"
	UserRoleKey ContextKey = "userRole"
)

// SignupRequest は新規登録APIのリクエストボディ (DTO)
type SignupRequest struct {
	FirstName       string `json:"firstName" validate:"required,min=1,max=100"`
	LastName        string `json:"lastName" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleAuthRequest はGoogle OAuthコールバック後にフロントエンドが送るペイロード
type GoogleAuthRequest struct {
	GoogleID       string `json:"googleId" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture"`
}

// StudentDetails / TeacherDetails は役割選択時の追加情報
type StudentDetails struct {
	Grade    string   `json:"grade"`
	Subjects []string `json:"subjects"`
}

type TeacherDetails struct {
	School   string   `json:"school"`
	Subjects []string `json:"subjects"`
	Grades   []string `json:"grades"`
}

type UpdateProfileRequest struct {
	Role           string          `json:"role" validate:"required,oneof=student teacher"`
	StudentDetails *StudentDetails `json:"studentDetails,omitempty"`
	TeacherDetails *TeacherDetails `json:"teacherDetails,omitempty"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// AuthUser はレスポンスに含めるユーザー情報
type AuthUser struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Role           string  `json:"role"`
}

// AuthResponse は認証系エンドポイント共通の成功レスポンス
type AuthResponse struct {
	Success              bool      `json:"success"`
	Message              string    `json:"message"`
	Token                string    `json:"token,omitempty"`
	RequiresVerification bool      `json:"requiresVerification,omitempty"`
	User                 *AuthUser `json:"user,omitempty"`
}

// CurrentUser は GET /api/users/me のレスポンス本体
type CurrentUser struct {
	Profile        *Profile        `json:"user"`
	StudentDetails *StudentProfile `json:"studentDetails,omitempty"`
	TeacherDetails *TeacherProfile `json:"teacherDetails,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SupabaseSession はプロバイダ発行のセッショントークン。
// クライアントがプロバイダへ直接アクセスする際に使う不透明なペイロードとして
// セッションJWTに埋め込まれる。
type SupabaseSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

// SessionClaims はセッションJWTのペイロード
type SessionClaims struct {
	Email    string           `json:"email"`
	Role     string           `json:"role"`
	Supabase *SupabaseSession `json:"supabase,omitempty"`
	jwt.RegisteredClaims
}
