//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"
	"github.com/LrenceLapating/Pathfinder/internal/provider"
	"github.com/LrenceLapating/Pathfinder/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService は認証フロー全体を提供します。
// 資格情報 (パスワード) の保管と検証はすべて外部プロバイダに委譲し、
// アプリケーション側はプロフィール行とセッションJWTだけを管理します。
type AuthService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)
	Signin(ctx context.Context, req *model.SigninRequest) (*model.AuthResponse, error)
	VerifyPassword(ctx context.Context, email, password string) error
	GoogleAuth(ctx context.Context, req *model.GoogleAuthRequest) (*model.AuthResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.AuthResponse, error)
	VerifyEmail(ctx context.Context, tokenHash string) (*model.AuthResponse, error)
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*model.CurrentUser, error)
}

type authService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
	roleRepo    repository.RoleProfileRepository
	provider    provider.AuthProvider
	syncer      ProfileSyncer
	issuer      TokenIssuer
	mailer      Mailer
	cfg         *config.Config
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(
	db *gorm.DB,
	profileRepo repository.ProfileRepository,
	roleRepo repository.RoleProfileRepository,
	authProvider provider.AuthProvider,
	syncer ProfileSyncer,
	issuer TokenIssuer,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		db:          db,
		profileRepo: profileRepo,
		roleRepo:    roleRepo,
		provider:    authProvider,
		syncer:      syncer,
		issuer:      issuer,
		mailer:      mailer,
		cfg:         cfg,
	}
}

// Signup は新しいユーザーをプロバイダに登録し、プロフィール行を作成します。
// メール確認が完了するまで requiresVerification フラグを立てて返します。
func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	identity, err := s.provider.SignUp(ctx, req.Email, req.Password, map[string]any{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Warn("Signup failed: email already registered")
			return nil, model.NewAppError("DUPLICATE_EMAIL", "An account with this email already exists", "email", model.ErrConflict)
		}
		logger.Error("Signup failed: provider error", "error", err)
		return nil, err
	}

	profile, err := s.syncer.EnsureProfile(ctx, identity, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(profile.ID, profile.Email, profile.Role, nil)
	if err != nil {
		logger.Error("Failed to issue session token after signup", "error", err)
		return nil, err
	}

	logger.Info("User registered", "user_id", profile.ID.String())
	return &model.AuthResponse{
		Success:              true,
		Message:              "Registration successful! Please check your email to verify your account.",
		Token:                token,
		RequiresVerification: !profile.IsVerified,
		User:                 toAuthUser(profile),
	}, nil
}

// Signin はパスワードグラントでプロバイダに認証を委譲し、
// 得られたセッションを内包するアプリケーションJWTを返します。
func (s *authService) Signin(ctx context.Context, req *model.SigninRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	session, err := s.provider.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) || errors.Is(err, model.ErrInvalidInput) {
			logger.Warn("Signin failed: invalid credentials")
			return nil, model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password", "", model.ErrUnauthorized)
		}
		logger.Error("Signin failed: provider error", "error", err)
		return nil, err
	}
	if session.User == nil {
		logger.Error("Signin failed: provider returned session without user")
		return nil, model.NewAppError("PROVIDER_ERROR", "Server error", "", model.ErrUpstream)
	}

	// 登録時の同期が落ちていた場合もここで行が補完される
	firstName, lastName := namesFromMetadata(session.User.UserMetadata)
	profile, err := s.syncer.EnsureProfile(ctx, session.User, firstName, lastName)
	if err != nil {
		return nil, err
	}

	// プロバイダ側で確認済みなのにローカルが未確認なら追従させる
	if session.User.EmailConfirmed && !profile.IsVerified {
		if err := s.syncer.MarkVerified(ctx, profile.ID); err != nil {
			logger.Warn("Failed to sync verified flag on signin", "error", err)
		} else {
			profile.IsVerified = true
		}
	}

	token, err := s.issuer.Issue(profile.ID, profile.Email, profile.Role, &model.SupabaseSession{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	})
	if err != nil {
		logger.Error("Failed to issue session token after signin", "error", err)
		return nil, err
	}

	logger.Info("Signin successful", "user_id", profile.ID.String())
	return &model.AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		Token:   token,
		User:    toAuthUser(profile),
	}, nil
}

// VerifyPassword は資格情報の確認だけを行い、取得したセッションは破棄します。
// 再認証が必要な操作 (設定変更前の確認など) から利用されます。
func (s *authService) VerifyPassword(ctx context.Context, email, password string) error {
	logger := middleware.GetLogger(ctx).With("email", email)

	if _, err := s.provider.SignInWithPassword(ctx, email, password); err != nil {
		if errors.Is(err, model.ErrUnauthorized) || errors.Is(err, model.ErrInvalidInput) {
			logger.Warn("Password verification failed")
			return model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password", "", model.ErrUnauthorized)
		}
		logger.Error("Password verification failed: provider error", "error", err)
		return err
	}
	return nil
}

// GoogleAuth はGoogle OAuth後のアカウント解決を行います。
// google_id → email の順で既存アカウントを探し、emailで見つかった場合は
// 重複登録にせず既存アカウントへGoogleを紐付けます。
func (s *authService) GoogleAuth(ctx context.Context, req *model.GoogleAuthRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	profile, err := s.profileRepo.FindByGoogleID(ctx, s.db, req.GoogleID)
	if err == nil {
		return s.googleAuthResponse(ctx, profile, "Signed in with Google")
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	profile, err = s.profileRepo.FindByEmail(ctx, s.db, req.Email)
	if err == nil {
		// 既存アカウントにGoogleを紐付け
		var picture *string
		if req.ProfilePicture != "" {
			picture = &req.ProfilePicture
		}
		if err := s.profileRepo.LinkGoogleAccount(ctx, s.db, profile.ID, req.GoogleID, picture); err != nil {
			logger.Error("Failed to link Google account", "error", err, "user_id", profile.ID.String())
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
		}
		logger.Info("Google account linked", "user_id", profile.ID.String())

		profile, err = s.profileRepo.FindByID(ctx, s.db, profile.ID)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
		}
		return s.googleAuthResponse(ctx, profile, "Signed in with Google")
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	// 新規ユーザー。パスワードは使わせないのでランダム値をプロバイダに渡す。
	tempPassword, err := randomSecret()
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	confirm := true
	identity, err := s.provider.AdminCreateUser(ctx, provider.AdminCreateUserParams{
		Email:        req.Email,
		Password:     tempPassword,
		EmailConfirm: confirm,
		UserMetadata: map[string]any{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"google_id":  req.GoogleID,
		},
	})
	if err != nil {
		logger.Error("Failed to create provider user for Google signup", "error", err)
		return nil, err
	}

	profile, err = s.syncer.EnsureProfile(ctx, identity, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	var picture *string
	if req.ProfilePicture != "" {
		picture = &req.ProfilePicture
	}
	if err := s.profileRepo.LinkGoogleAccount(ctx, s.db, profile.ID, req.GoogleID, picture); err != nil {
		logger.Error("Failed to attach Google identity to new profile", "error", err, "user_id", profile.ID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	profile, err = s.profileRepo.FindByID(ctx, s.db, profile.ID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	logger.Info("Google user registered", "user_id", profile.ID.String())
	return s.googleAuthResponse(ctx, profile, "Account created with Google")
}

func (s *authService) googleAuthResponse(ctx context.Context, profile *model.Profile, message string) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)
	token, err := s.issuer.Issue(profile.ID, profile.Email, profile.Role, nil)
	if err != nil {
		logger.Error("Failed to issue session token for Google auth", "error", err, "user_id", profile.ID.String())
		return nil, err
	}
	return &model.AuthResponse{
		Success: true,
		Message: message,
		Token:   token,
		User:    toAuthUser(profile),
	}, nil
}

// UpdateProfile はロールの確定と詳細情報の保存を行います。
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	profile, err := s.syncer.AssignRole(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	// ロールはJWTのクレームに含まれるため、更新後のトークンを発行し直す
	token, err := s.issuer.Issue(profile.ID, profile.Email, profile.Role, nil)
	if err != nil {
		logger.Error("Failed to reissue session token after profile update", "error", err, "user_id", profile.ID.String())
		return nil, err
	}

	return &model.AuthResponse{
		Success: true,
		Message: "Profile updated successfully",
		Token:   token,
		User:    toAuthUser(profile),
	}, nil
}

// VerifyEmail はプロバイダ発行の確認トークンを検証し、ローカルの確認フラグを追従させます。
func (s *authService) VerifyEmail(ctx context.Context, tokenHash string) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	session, err := s.provider.Verify(ctx, provider.VerifyTypeSignup, tokenHash)
	if err != nil {
		logger.Warn("Email verification failed", "error", err)
		return nil, model.NewAppError("INVALID_TOKEN", "Verification link is invalid or has expired", "", model.ErrInvalidInput)
	}
	if session.User == nil {
		return nil, model.NewAppError("PROVIDER_ERROR", "Server error", "", model.ErrUpstream)
	}

	userID, err := uuid.Parse(session.User.ID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	if err := s.syncer.MarkVerified(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	token, err := s.issuer.Issue(profile.ID, profile.Email, profile.Role, &model.SupabaseSession{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Email verified", "user_id", profile.ID.String())
	return &model.AuthResponse{
		Success: true,
		Message: "Email verified successfully",
		Token:   token,
		User:    toAuthUser(profile),
	}, nil
}

// ResendVerification は確認リンクを再生成してメールで送ります。
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	logger := middleware.GetLogger(ctx).With("email", email)

	link, err := s.provider.AdminGenerateLink(ctx, provider.LinkTypeSignup, email, s.cfg.App.FrontendURL+"/auth-callback")
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Resend verification requested for unknown email")
			return model.NewAppError("NOT_FOUND", "No account found with this email", "email", model.ErrNotFound)
		}
		logger.Error("Failed to generate verification link", "error", err)
		return err
	}

	subject := "PathFinder - Verify your email"
	body := fmt.Sprintf("Welcome to PathFinder!\n\nPlease verify your email address by clicking the link below:\n%s\n\nIf you did not create an account, you can ignore this email.", link.ActionLink)

	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		logger.Error("Failed to send verification email", "error", err)
		return model.NewAppError("EMAIL_SEND_FAILED", "Error sending verification email", "", err)
	}

	logger.Info("Verification email sent")
	return nil
}

// ForgotPassword はパスワード再設定リンクを送ります。
// アカウントの存在を悟られないよう、未登録のメールでも成功として扱います。
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	logger := middleware.GetLogger(ctx).With("email", email)

	link, err := s.provider.AdminGenerateLink(ctx, provider.LinkTypeRecovery, email, s.cfg.App.FrontendURL+"/reset-password")
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Password reset requested for unknown email")
			return nil
		}
		logger.Error("Failed to generate password reset link", "error", err)
		return err
	}

	subject := "PathFinder - Reset your password"
	body := fmt.Sprintf("We received a request to reset your password.\n\nClick the link below to choose a new password:\n%s\n\nIf you did not request this, you can ignore this email.", link.ActionLink)

	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		logger.Error("Failed to send password reset email", "error", err)
		return model.NewAppError("EMAIL_SEND_FAILED", "Error sending password reset email", "", err)
	}

	logger.Info("Password reset email sent")
	return nil
}

// ResetPassword は再設定トークンを検証し、プロバイダ側のパスワードを更新します。
func (s *authService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	logger := middleware.GetLogger(ctx)

	session, err := s.provider.Verify(ctx, provider.VerifyTypeRecovery, req.Token)
	if err != nil {
		logger.Warn("Password reset token verification failed", "error", err)
		return model.NewAppError("INVALID_TOKEN", "Reset link is invalid or has expired", "token", model.ErrInvalidInput)
	}
	if session.User == nil {
		return model.NewAppError("PROVIDER_ERROR", "Server error", "", model.ErrUpstream)
	}

	if _, err := s.provider.AdminUpdateUser(ctx, session.User.ID, provider.AdminUpdateUserParams{
		Password: &req.Password,
	}); err != nil {
		logger.Error("Failed to update password at provider", "error", err)
		return err
	}

	logger.Info("Password reset successfully", "user_id", session.User.ID)
	return nil
}

// GetCurrentUser はプロフィールとロール別詳細をまとめて返します。
func (s *authService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*model.CurrentUser, error) {
	logger := middleware.GetLogger(ctx)

	profile, err := s.profileRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "User not found", "", model.ErrNotFound)
		}
		logger.Error("Failed to load current user", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	current := &model.CurrentUser{Profile: profile}

	switch profile.Role {
	case model.RoleStudent:
		detail, err := s.roleRepo.FindStudentProfile(ctx, s.db, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
		}
		current.StudentDetails = detail
	case model.RoleTeacher:
		detail, err := s.roleRepo.FindTeacherProfile(ctx, s.db, userID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
		}
		current.TeacherDetails = detail
	}

	return current, nil
}

// --- ヘルパー関数 ---

func toAuthUser(profile *model.Profile) *model.AuthUser {
	return &model.AuthUser{
		ID:             profile.ID.String(),
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Email:          profile.Email,
		ProfilePicture: profile.ProfilePicture,
		Role:           profile.Role,
	}
}

func namesFromMetadata(metadata map[string]any) (string, string) {
	first, _ := metadata["first_name"].(string)
	last, _ := metadata["last_name"].(string)
	return first, last
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
