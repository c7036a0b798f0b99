//go:generate mockery --name ProfileSyncer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"
	"github.com/LrenceLapating/Pathfinder/internal/provider"
	"github.com/LrenceLapating/Pathfinder/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ProfileSyncer は認証プロバイダ上のID (auth.users) とアプリケーションの
// プロフィール行 (profiles) の対応を維持します。
type ProfileSyncer interface {
	EnsureProfile(ctx context.Context, identity *provider.Identity, firstName, lastName string) (*model.Profile, error)
	MarkVerified(ctx context.Context, userID uuid.UUID) error
	AssignRole(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error)
	ReconcileRoles(ctx context.Context) (int, error)
}

type profileSyncer struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
	roleRepo    repository.RoleProfileRepository
}

func NewProfileSyncer(db *gorm.DB, profileRepo repository.ProfileRepository, roleRepo repository.RoleProfileRepository) ProfileSyncer {
	return &profileSyncer{
		db:          db,
		profileRepo: profileRepo,
		roleRepo:    roleRepo,
	}
}

// ensureProfileMaxAttempts はプロフィール作成のリトライ上限です。
// プロバイダ側のユーザー行がレプリケーション遅延で見えない間は外部キー違反になるため、
// 固定スリープではなくバックオフ付きで再試行します。
const ensureProfileMaxAttempts = 3

var ensureProfileBackoff = 200 * time.Millisecond

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// EnsureProfile はプロバイダIDに対応するプロフィール行を保証します。
// 既に存在する場合はそれを返し、存在しない場合は作成します（冪等）。
func (s *profileSyncer) EnsureProfile(ctx context.Context, identity *provider.Identity, firstName, lastName string) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)

	userID, err := uuid.Parse(identity.ID)
	if err != nil {
		logger.Error("Provider returned an invalid user ID", "error", err, "raw_id", identity.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	// 既存行があればそのまま返す
	existing, err := s.profileRepo.FindByID(ctx, s.db, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	profile := &model.Profile{
		ID:         userID,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      identity.Email,
		IsVerified: identity.EmailConfirmed,
	}

	backoff := ensureProfileBackoff
	for attempt := 1; ; attempt++ {
		err = s.profileRepo.Create(ctx, s.db, profile)
		if err == nil {
			logger.Info("Profile created", "user_id", userID.String(), "attempt", attempt)
			return profile, nil
		}

		// 同時リクエストが先に作成した場合は既存行を返す
		if errors.Is(err, model.ErrConflict) {
			existing, findErr := s.profileRepo.FindByID(ctx, s.db, userID)
			if findErr == nil {
				return existing, nil
			}
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", findErr)
		}

		if !isForeignKeyViolation(err) || attempt >= ensureProfileMaxAttempts {
			logger.Error("Failed to create profile", "error", err, "user_id", userID.String(), "attempt", attempt)
			return nil, model.NewAppError("PROFILE_SYNC_FAILED", "Error saving user information", "", err)
		}

		logger.Warn("Profile insert hit a foreign key violation, retrying",
			"user_id", userID.String(),
			"attempt", attempt,
			"backoff_ms", backoff.Milliseconds(),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (s *profileSyncer) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	if err := s.profileRepo.SetVerified(ctx, s.db, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "User not found", "", model.ErrNotFound)
		}
		logger.Error("Failed to mark profile verified", "error", err, "user_id", userID.String())
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}
	return nil
}

// AssignRole はロールの確定と詳細行の作成を1トランザクションで行います。
// 詳細行はUPSERTなので、同じリクエストの再送でも結果は変わりません。
func (s *profileSyncer) AssignRole(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.Profile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.UpdateRole(ctx, tx, userID, req.Role); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "User not found", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Error updating profile", "", err)
		}

		switch req.Role {
		case model.RoleStudent:
			detail := &model.StudentProfile{UserID: userID}
			if req.StudentDetails != nil {
				detail.Grade = req.StudentDetails.Grade
				detail.Subjects = pq.StringArray(req.StudentDetails.Subjects)
			}
			if err := s.roleRepo.UpsertStudentProfile(ctx, tx, detail); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Error updating profile", "", err)
			}
		case model.RoleTeacher:
			detail := &model.TeacherProfile{UserID: userID}
			if req.TeacherDetails != nil {
				detail.School = req.TeacherDetails.School
				detail.Subjects = pq.StringArray(req.TeacherDetails.Subjects)
				detail.Grades = pq.StringArray(req.TeacherDetails.Grades)
			}
			if err := s.roleRepo.UpsertTeacherProfile(ctx, tx, detail); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Error updating profile", "", err)
			}
		}

		profile, err := s.profileRepo.FindByID(ctx, tx, userID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Error updating profile", "", err)
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Role assigned", "user_id", userID.String(), "role", req.Role)
	return updated, nil
}

// ReconcileRoles はロールは確定しているのに詳細行が欠けているプロフィールを検出し、
// 空の詳細行を補完します。補完した件数を返します。
func (s *profileSyncer) ReconcileRoles(ctx context.Context) (int, error) {
	logger := middleware.GetLogger(ctx)
	repaired := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		students, err := s.roleRepo.FindProfilesMissingRoleRow(ctx, tx, model.RoleStudent)
		if err != nil {
			return err
		}
		for _, p := range students {
			if err := s.roleRepo.UpsertStudentProfile(ctx, tx, &model.StudentProfile{UserID: p.ID}); err != nil {
				return err
			}
			logger.Info("Repaired missing student profile row", "user_id", p.ID.String())
			repaired++
		}

		teachers, err := s.roleRepo.FindProfilesMissingRoleRow(ctx, tx, model.RoleTeacher)
		if err != nil {
			return err
		}
		for _, p := range teachers {
			if err := s.roleRepo.UpsertTeacherProfile(ctx, tx, &model.TeacherProfile{UserID: p.ID}); err != nil {
				return err
			}
			logger.Info("Repaired missing teacher profile row", "user_id", p.ID.String())
			repaired++
		}

		return nil
	})
	if err != nil {
		logger.Error("Role reconciliation failed", "error", err)
		return repaired, err
	}

	return repaired, nil
}
