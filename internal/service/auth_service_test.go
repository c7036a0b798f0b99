// internal/service/auth_service_test.go
package service_test // 公開APIだけを通してテストする

import (
	"context"
	"testing"
	"time"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/model"
	"github.com/LrenceLapating/Pathfinder/internal/provider"
	providermocks "github.com/LrenceLapating/Pathfinder/internal/provider/mocks"
	"github.com/LrenceLapating/Pathfinder/internal/repository/mocks"
	"github.com/LrenceLapating/Pathfinder/internal/service"
	servicemocks "github.com/LrenceLapating/Pathfinder/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- テストスイートの定義 ---
type AuthServiceTestSuite struct {
	suite.Suite

	mockProfileRepo *mocks.ProfileRepository
	mockRoleRepo    *mocks.RoleProfileRepository
	mockProvider    *providermocks.AuthProvider
	mockSyncer      *servicemocks.ProfileSyncer
	mockIssuer      *servicemocks.TokenIssuer
	mockMailer      *servicemocks.Mailer
	cfg             *config.Config
	authService     service.AuthService
}

// --- セットアップメソッド ---
// 各テストの前にモックを作り直してクリーンな状態にする
func (s *AuthServiceTestSuite) SetupTest() {
	s.mockProfileRepo = new(mocks.ProfileRepository)
	s.mockRoleRepo = new(mocks.RoleProfileRepository)
	s.mockProvider = new(providermocks.AuthProvider)
	s.mockSyncer = new(servicemocks.ProfileSyncer)
	s.mockIssuer = new(servicemocks.TokenIssuer)
	s.mockMailer = new(servicemocks.Mailer)

	s.cfg = &config.Config{
		App: config.AppConfig{
			Name:        "PathFinder",
			FrontendURL: "http://localhost:3000",
		},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
	}

	// DB操作はすべてリポジトリモック越しなので *gorm.DB は nil でよい
	s.authService = service.NewAuthService(
		nil,
		s.mockProfileRepo,
		s.mockRoleRepo,
		s.mockProvider,
		s.mockSyncer,
		s.mockIssuer,
		s.mockMailer,
		s.cfg,
	)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) assertAllExpectations() {
	s.mockProfileRepo.AssertExpectations(s.T())
	s.mockRoleRepo.AssertExpectations(s.T())
	s.mockProvider.AssertExpectations(s.T())
	s.mockSyncer.AssertExpectations(s.T())
	s.mockIssuer.AssertExpectations(s.T())
	s.mockMailer.AssertExpectations(s.T())
}

// --- Signup ---
func (s *AuthServiceTestSuite) TestSignup() {
	userID := uuid.New()
	req := &model.SignupRequest{
		FirstName:       "Taro",
		LastName:        "Yamada",
		Email:           "taro@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}

	testCases := []struct {
		name        string
		setupMocks  func()
		checkResult func(resp *model.AuthResponse, err error)
	}{
		{
			name: "Success - 登録に成功し確認待ちフラグが立つ",
			setupMocks: func() {
				identity := &provider.Identity{ID: userID.String(), Email: req.Email}
				s.mockProvider.On("SignUp", mock.Anything, req.Email, req.Password, mock.Anything).
					Return(identity, nil).Once()
				s.mockSyncer.On("EnsureProfile", mock.Anything, identity, req.FirstName, req.LastName).
					Return(&model.Profile{ID: userID, Email: req.Email, IsVerified: false}, nil).Once()
				s.mockIssuer.On("Issue", userID, req.Email, "", (*model.SupabaseSession)(nil)).
					Return("signed-token", nil).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.NoError(err)
				s.Require().NotNil(resp)
				s.True(resp.Success)
				s.True(resp.RequiresVerification)
				s.Equal("signed-token", resp.Token)
				s.Equal(req.Email, resp.User.Email)
			},
		},
		{
			name: "Failure - Emailが重複している",
			setupMocks: func() {
				s.mockProvider.On("SignUp", mock.Anything, req.Email, req.Password, mock.Anything).
					Return(nil, model.NewAppError("DUPLICATE_EMAIL", "Email already in use", "email", model.ErrConflict)).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.Nil(resp)
				s.Require().Error(err)
				var appErr *model.AppError
				s.Require().ErrorAs(err, &appErr)
				s.Equal("DUPLICATE_EMAIL", appErr.Detail.Code)
				s.ErrorIs(err, model.ErrConflict)
			},
		},
		{
			name: "Failure - プロバイダが落ちている",
			setupMocks: func() {
				s.mockProvider.On("SignUp", mock.Anything, req.Email, req.Password, mock.Anything).
					Return(nil, model.NewAppError("PROVIDER_UNAVAILABLE", "Authentication service is currently unavailable.", "", model.ErrUpstream)).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.Nil(resp)
				s.ErrorIs(err, model.ErrUpstream)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			resp, err := s.authService.Signup(context.Background(), req)

			tc.checkResult(resp, err)
			s.assertAllExpectations()
		})
	}
}

// --- Signin ---
func (s *AuthServiceTestSuite) TestSignin() {
	userID := uuid.New()
	req := &model.SigninRequest{Email: "taro@example.com", Password: "password123"}

	testCases := []struct {
		name        string
		setupMocks  func()
		checkResult func(resp *model.AuthResponse, err error)
	}{
		{
			name: "Success - セッション付きトークンが発行される",
			setupMocks: func() {
				session := &provider.Session{
					AccessToken:  "sb-access",
					RefreshToken: "sb-refresh",
					ExpiresAt:    time.Now().Add(time.Hour).Unix(),
					User: &provider.Identity{
						ID:             userID.String(),
						Email:          req.Email,
						EmailConfirmed: true,
						UserMetadata:   map[string]any{"first_name": "Taro", "last_name": "Yamada"},
					},
				}
				s.mockProvider.On("SignInWithPassword", mock.Anything, req.Email, req.Password).
					Return(session, nil).Once()
				s.mockSyncer.On("EnsureProfile", mock.Anything, session.User, "Taro", "Yamada").
					Return(&model.Profile{ID: userID, Email: req.Email, Role: model.RoleStudent, IsVerified: true}, nil).Once()
				s.mockIssuer.On("Issue", userID, req.Email, model.RoleStudent, mock.MatchedBy(func(sess *model.SupabaseSession) bool {
					return sess != nil && sess.AccessToken == "sb-access"
				})).Return("signed-token", nil).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.NoError(err)
				s.Require().NotNil(resp)
				s.Equal("signed-token", resp.Token)
				s.False(resp.RequiresVerification)
			},
		},
		{
			name: "Success - プロバイダ側で確認済みならローカルの確認フラグを追従させる",
			setupMocks: func() {
				session := &provider.Session{
					AccessToken: "sb-access",
					User: &provider.Identity{
						ID:             userID.String(),
						Email:          req.Email,
						EmailConfirmed: true,
					},
				}
				s.mockProvider.On("SignInWithPassword", mock.Anything, req.Email, req.Password).
					Return(session, nil).Once()
				s.mockSyncer.On("EnsureProfile", mock.Anything, session.User, "", "").
					Return(&model.Profile{ID: userID, Email: req.Email, IsVerified: false}, nil).Once()
				s.mockSyncer.On("MarkVerified", mock.Anything, userID).Return(nil).Once()
				s.mockIssuer.On("Issue", userID, req.Email, "", mock.AnythingOfType("*model.SupabaseSession")).
					Return("signed-token", nil).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.NoError(err)
				s.Require().NotNil(resp)
			},
		},
		{
			name: "Failure - 資格情報が不正",
			setupMocks: func() {
				s.mockProvider.On("SignInWithPassword", mock.Anything, req.Email, req.Password).
					Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password", "", model.ErrUnauthorized)).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.Nil(resp)
				var appErr *model.AppError
				s.Require().ErrorAs(err, &appErr)
				s.Equal("AUTHENTICATION_FAILED", appErr.Detail.Code)
				s.ErrorIs(err, model.ErrUnauthorized)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			resp, err := s.authService.Signin(context.Background(), req)

			tc.checkResult(resp, err)
			s.assertAllExpectations()
		})
	}
}

// --- GoogleAuth ---
func (s *AuthServiceTestSuite) TestGoogleAuth() {
	userID := uuid.New()
	req := &model.GoogleAuthRequest{
		GoogleID:       "google-sub-123",
		Email:          "taro@example.com",
		FirstName:      "Taro",
		LastName:       "Yamada",
		ProfilePicture: "https://example.com/p.png",
	}

	testCases := []struct {
		name        string
		setupMocks  func()
		checkResult func(resp *model.AuthResponse, err error)
	}{
		{
			name: "Success - Google IDで既存ユーザーが見つかる",
			setupMocks: func() {
				s.mockProfileRepo.On("FindByGoogleID", mock.Anything, mock.Anything, req.GoogleID).
					Return(&model.Profile{ID: userID, Email: req.Email, Role: model.RoleStudent}, nil).Once()
				s.mockIssuer.On("Issue", userID, req.Email, model.RoleStudent, (*model.SupabaseSession)(nil)).
					Return("signed-token", nil).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.NoError(err)
				s.Require().NotNil(resp)
				s.Equal("Signed in with Google", resp.Message)
			},
		},
		{
			name: "Success - メールで見つかった既存アカウントにGoogleを紐付ける（重複登録しない）",
			setupMocks: func() {
				s.mockProfileRepo.On("FindByGoogleID", mock.Anything, mock.Anything, req.GoogleID).
					Return(nil, model.ErrNotFound).Once()
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).
					Return(&model.Profile{ID: userID, Email: req.Email}, nil).Once()
				s.mockProfileRepo.On("LinkGoogleAccount", mock.Anything, mock.Anything, userID, req.GoogleID, mock.MatchedBy(func(p *string) bool {
					return p != nil && *p == req.ProfilePicture
				})).Return(nil).Once()
				s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, userID).
					Return(&model.Profile{ID: userID, Email: req.Email, GoogleID: &req.GoogleID}, nil).Once()
				s.mockIssuer.On("Issue", userID, req.Email, "", (*model.SupabaseSession)(nil)).
					Return("signed-token", nil).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.NoError(err)
				s.Require().NotNil(resp)
				s.Equal("Signed in with Google", resp.Message)
				// AdminCreateUser が呼ばれていないこと = 新規登録していないこと
				s.mockProvider.AssertNotCalled(s.T(), "AdminCreateUser", mock.Anything, mock.Anything)
			},
		},
		{
			name: "Success - 新規ユーザーは確認済みで作成される",
			setupMocks: func() {
				s.mockProfileRepo.On("FindByGoogleID", mock.Anything, mock.Anything, req.GoogleID).
					Return(nil, model.ErrNotFound).Once()
				s.mockProfileRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).
					Return(nil, model.ErrNotFound).Once()

				identity := &provider.Identity{ID: userID.String(), Email: req.Email, EmailConfirmed: true}
				s.mockProvider.On("AdminCreateUser", mock.Anything, mock.MatchedBy(func(params provider.AdminCreateUserParams) bool {
					return params.Email == req.Email && params.EmailConfirm && params.Password != ""
				})).Return(identity, nil).Once()

				s.mockSyncer.On("EnsureProfile", mock.Anything, identity, req.FirstName, req.LastName).
					Return(&model.Profile{ID: userID, Email: req.Email, IsVerified: true}, nil).Once()
				s.mockProfileRepo.On("LinkGoogleAccount", mock.Anything, mock.Anything, userID, req.GoogleID, mock.Anything).
					Return(nil).Once()
				s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, userID).
					Return(&model.Profile{ID: userID, Email: req.Email, GoogleID: &req.GoogleID, IsVerified: true}, nil).Once()
				s.mockIssuer.On("Issue", userID, req.Email, "", (*model.SupabaseSession)(nil)).
					Return("signed-token", nil).Once()
			},
			checkResult: func(resp *model.AuthResponse, err error) {
				s.NoError(err)
				s.Require().NotNil(resp)
				s.Equal("Account created with Google", resp.Message)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			resp, err := s.authService.GoogleAuth(context.Background(), req)

			tc.checkResult(resp, err)
			s.assertAllExpectations()
		})
	}
}

// --- UpdateProfile ---
func (s *AuthServiceTestSuite) TestUpdateProfile() {
	userID := uuid.New()
	req := &model.UpdateProfileRequest{
		Role:           model.RoleStudent,
		StudentDetails: &model.StudentDetails{Grade: "Grade 10", Subjects: []string{"Math"}},
	}

	s.Run("Success - ロール確定後にトークンが再発行される", func() {
		s.SetupTest()
		s.mockSyncer.On("AssignRole", mock.Anything, userID, req).
			Return(&model.Profile{ID: userID, Email: "taro@example.com", Role: model.RoleStudent}, nil).Once()
		s.mockIssuer.On("Issue", userID, "taro@example.com", model.RoleStudent, (*model.SupabaseSession)(nil)).
			Return("reissued-token", nil).Once()

		resp, err := s.authService.UpdateProfile(context.Background(), userID, req)

		s.NoError(err)
		s.Require().NotNil(resp)
		s.Equal("reissued-token", resp.Token)
		s.Equal(model.RoleStudent, resp.User.Role)
		s.assertAllExpectations()
	})

	s.Run("Failure - 対象ユーザーが存在しない", func() {
		s.SetupTest()
		s.mockSyncer.On("AssignRole", mock.Anything, userID, req).
			Return(nil, model.NewAppError("NOT_FOUND", "User not found", "", model.ErrNotFound)).Once()

		resp, err := s.authService.UpdateProfile(context.Background(), userID, req)

		s.Nil(resp)
		s.ErrorIs(err, model.ErrNotFound)
		s.assertAllExpectations()
	})
}

// --- VerifyEmail ---
func (s *AuthServiceTestSuite) TestVerifyEmail() {
	userID := uuid.New()

	s.Run("Success - トークンを検証して確認フラグを立てる", func() {
		s.SetupTest()
		session := &provider.Session{
			AccessToken: "sb-access",
			User:        &provider.Identity{ID: userID.String(), Email: "taro@example.com", EmailConfirmed: true},
		}
		s.mockProvider.On("Verify", mock.Anything, provider.VerifyTypeSignup, "token-hash").
			Return(session, nil).Once()
		s.mockSyncer.On("MarkVerified", mock.Anything, userID).Return(nil).Once()
		s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, userID).
			Return(&model.Profile{ID: userID, Email: "taro@example.com", IsVerified: true}, nil).Once()
		s.mockIssuer.On("Issue", userID, "taro@example.com", "", mock.AnythingOfType("*model.SupabaseSession")).
			Return("signed-token", nil).Once()

		resp, err := s.authService.VerifyEmail(context.Background(), "token-hash")

		s.NoError(err)
		s.Require().NotNil(resp)
		s.Equal("Email verified successfully", resp.Message)
		s.assertAllExpectations()
	})

	s.Run("Failure - トークンが無効または期限切れ", func() {
		s.SetupTest()
		s.mockProvider.On("Verify", mock.Anything, provider.VerifyTypeSignup, "bad-token").
			Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password", "", model.ErrUnauthorized)).Once()

		resp, err := s.authService.VerifyEmail(context.Background(), "bad-token")

		s.Nil(resp)
		var appErr *model.AppError
		s.Require().ErrorAs(err, &appErr)
		s.Equal("INVALID_TOKEN", appErr.Detail.Code)
		s.assertAllExpectations()
	})
}

// --- ResendVerification / ForgotPassword ---
func (s *AuthServiceTestSuite) TestResendVerification() {
	email := "taro@example.com"

	s.Run("Success - 確認リンクをメールで送る", func() {
		s.SetupTest()
		s.mockProvider.On("AdminGenerateLink", mock.Anything, provider.LinkTypeSignup, email, "http://localhost:3000/auth-callback").
			Return(&provider.Link{ActionLink: "https://auth.example.com/verify?token=x"}, nil).Once()
		s.mockMailer.On("Send", mock.Anything, email, mock.Anything, mock.MatchedBy(func(body string) bool {
			return len(body) > 0
		})).Return(nil).Once()

		err := s.authService.ResendVerification(context.Background(), email)

		s.NoError(err)
		s.assertAllExpectations()
	})

	s.Run("Failure - 未登録のメールアドレス", func() {
		s.SetupTest()
		s.mockProvider.On("AdminGenerateLink", mock.Anything, provider.LinkTypeSignup, email, mock.Anything).
			Return(nil, model.NewAppError("NOT_FOUND", "User not found", "", model.ErrNotFound)).Once()

		err := s.authService.ResendVerification(context.Background(), email)

		s.ErrorIs(err, model.ErrNotFound)
		s.mockMailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		s.assertAllExpectations()
	})
}

func (s *AuthServiceTestSuite) TestForgotPassword() {
	email := "taro@example.com"

	s.Run("Success - 再設定リンクをメールで送る", func() {
		s.SetupTest()
		s.mockProvider.On("AdminGenerateLink", mock.Anything, provider.LinkTypeRecovery, email, "http://localhost:3000/reset-password").
			Return(&provider.Link{ActionLink: "https://auth.example.com/recover?token=x"}, nil).Once()
		s.mockMailer.On("Send", mock.Anything, email, mock.Anything, mock.Anything).Return(nil).Once()

		err := s.authService.ForgotPassword(context.Background(), email)

		s.NoError(err)
		s.assertAllExpectations()
	})

	s.Run("Success - 未登録のメールでもエラーにしない（存在を悟らせない）", func() {
		s.SetupTest()
		s.mockProvider.On("AdminGenerateLink", mock.Anything, provider.LinkTypeRecovery, email, mock.Anything).
			Return(nil, model.NewAppError("NOT_FOUND", "User not found", "", model.ErrNotFound)).Once()

		err := s.authService.ForgotPassword(context.Background(), email)

		s.NoError(err)
		s.mockMailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		s.assertAllExpectations()
	})
}

// --- ResetPassword ---
func (s *AuthServiceTestSuite) TestResetPassword() {
	userID := uuid.New()
	req := &model.ResetPasswordRequest{Token: "recovery-token", Password: "newPassword123"}

	s.Run("Success - プロバイダ側のパスワードが更新される", func() {
		s.SetupTest()
		session := &provider.Session{User: &provider.Identity{ID: userID.String()}}
		s.mockProvider.On("Verify", mock.Anything, provider.VerifyTypeRecovery, req.Token).
			Return(session, nil).Once()
		s.mockProvider.On("AdminUpdateUser", mock.Anything, userID.String(), mock.MatchedBy(func(params provider.AdminUpdateUserParams) bool {
			return params.Password != nil && *params.Password == req.Password
		})).Return(&provider.Identity{ID: userID.String()}, nil).Once()

		err := s.authService.ResetPassword(context.Background(), req)

		s.NoError(err)
		s.assertAllExpectations()
	})

	s.Run("Failure - 再設定トークンが無効", func() {
		s.SetupTest()
		s.mockProvider.On("Verify", mock.Anything, provider.VerifyTypeRecovery, req.Token).
			Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "Invalid email or password", "", model.ErrUnauthorized)).Once()

		err := s.authService.ResetPassword(context.Background(), req)

		var appErr *model.AppError
		s.Require().ErrorAs(err, &appErr)
		s.Equal("INVALID_TOKEN", appErr.Detail.Code)
		s.mockProvider.AssertNotCalled(s.T(), "AdminUpdateUser", mock.Anything, mock.Anything, mock.Anything)
		s.assertAllExpectations()
	})
}

// --- GetCurrentUser ---
func (s *AuthServiceTestSuite) TestGetCurrentUser() {
	userID := uuid.New()

	s.Run("Success - 生徒ロールなら詳細も返す", func() {
		s.SetupTest()
		s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, userID).
			Return(&model.Profile{ID: userID, Role: model.RoleStudent}, nil).Once()
		s.mockRoleRepo.On("FindStudentProfile", mock.Anything, mock.Anything, userID).
			Return(&model.StudentProfile{UserID: userID, Grade: "Grade 10"}, nil).Once()

		current, err := s.authService.GetCurrentUser(context.Background(), userID)

		s.NoError(err)
		s.Require().NotNil(current)
		s.Require().NotNil(current.StudentDetails)
		s.Equal("Grade 10", current.StudentDetails.Grade)
		s.Nil(current.TeacherDetails)
		s.assertAllExpectations()
	})

	s.Run("Success - 詳細行が未作成でもプロフィールは返す", func() {
		s.SetupTest()
		s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, userID).
			Return(&model.Profile{ID: userID, Role: model.RoleTeacher}, nil).Once()
		s.mockRoleRepo.On("FindTeacherProfile", mock.Anything, mock.Anything, userID).
			Return(nil, model.ErrNotFound).Once()

		current, err := s.authService.GetCurrentUser(context.Background(), userID)

		s.NoError(err)
		s.Require().NotNil(current)
		s.Nil(current.TeacherDetails)
		s.assertAllExpectations()
	})

	s.Run("Failure - ユーザーが存在しない", func() {
		s.SetupTest()
		s.mockProfileRepo.On("FindByID", mock.Anything, mock.Anything, userID).
			Return(nil, model.ErrNotFound).Once()

		current, err := s.authService.GetCurrentUser(context.Background(), userID)

		s.Nil(current)
		s.ErrorIs(err, model.ErrNotFound)
		s.assertAllExpectations()
	})
}
