//go:generate mockery --name AuthProvider --output ./mocks --outpkg mocks --case=underscore
package provider

import (
	"context"
	"time"
)

// LinkType はメール内アクションリンクの種別
type LinkType string

const (
	LinkTypeSignup   LinkType = "signup"
	LinkTypeRecovery LinkType = "recovery"
)

// VerifyType はトークン検証の種別
type VerifyType string

const (
	VerifyTypeSignup   VerifyType = "signup"
	VerifyTypeRecovery VerifyType = "recovery"
)

// Identity は外部認証プロバイダが発行したユーザーを表します。
// IDはプロバイダ発行の不透明な識別子（profiles.idと共有される）。
type Identity struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	EmailConfirmed bool           `json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UserMetadata   map[string]any `json:"user_metadata,omitempty"`
}

// Session はプロバイダ発行のセッション。パスワード検証とセッション発行は
// プロバイダ側で不可分（password grantの結果が両方を兼ねる）。
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    int64     `json:"expires_at"`
	User         *Identity `json:"user,omitempty"`
}

// Link はadmin APIで生成したメール用アクションリンク
type Link struct {
	ActionLink string `json:"action_link"`
}

type AdminCreateUserParams struct {
	Email        string         `json:"email"`
	Password     string         `json:"password,omitempty"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type AdminUpdateUserParams struct {
	Password     *string        `json:"password,omitempty"`
	EmailConfirm *bool          `json:"email_confirm,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// AuthProvider は資格情報の保存・検証・セッション発行を担う外部プロバイダの抽象です。
// 実装は internal/provider の Supabase GoTrue クライアント。テストではモックに差し替える。
type AuthProvider interface {
	// SignUp は匿名キーでユーザーを作成する（確認メールはプロバイダ設定に従う）
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Identity, error)

	// SignInWithPassword はpassword grantを実行する。
	// 認証失敗は model.ErrUnauthorized、プロバイダ障害は model.ErrUpstream にマップされる。
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)

	// AdminCreateUser はservice roleキーでユーザーを直接作成する（ETL・Google登録用）
	AdminCreateUser(ctx context.Context, params AdminCreateUserParams) (*Identity, error)

	// AdminUpdateUser はユーザー属性を更新する
	AdminUpdateUser(ctx context.Context, userID string, params AdminUpdateUserParams) (*Identity, error)

	// AdminGenerateLink は確認・再設定メールに載せるアクションリンクを生成する
	AdminGenerateLink(ctx context.Context, linkType LinkType, email, redirectTo string) (*Link, error)

	// Verify はメール経由のトークンを検証し、成功時はそのユーザーのセッションを返す
	Verify(ctx context.Context, verifyType VerifyType, token string) (*Session, error)
}
