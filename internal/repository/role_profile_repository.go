//go:generate mockery --name RoleProfileRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleProfileRepository はロール別の詳細プロフィール (student/teacher) を扱います。
type RoleProfileRepository interface {
	UpsertStudentProfile(ctx context.Context, tx *gorm.DB, profile *model.StudentProfile) error
	UpsertTeacherProfile(ctx context.Context, tx *gorm.DB, profile *model.TeacherProfile) error
	FindStudentProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.StudentProfile, error)
	FindTeacherProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.TeacherProfile, error)
	FindProfilesMissingRoleRow(ctx context.Context, db *gorm.DB, role string) ([]*model.Profile, error)
}

type gormRoleProfileRepository struct{}

func NewGormRoleProfileRepository() RoleProfileRepository {
	return &gormRoleProfileRepository{}
}

func (r *gormRoleProfileRepository) UpsertStudentProfile(ctx context.Context, tx *gorm.DB, profile *model.StudentProfile) error {
	logger := middleware.GetLogger(ctx)
	// user_id をキーにした冪等なUPSERT。同じリクエストが再送されても行は1つに保たれる。
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"grade", "subjects"}),
	}).Create(profile)
	if result.Error != nil {
		logger.Error("Error upserting student profile in DB",
			"error", result.Error,
			"user_id", profile.UserID.String(),
		)
		return fmt.Errorf("gormRoleProfileRepository.UpsertStudentProfile: %w", result.Error)
	}
	return nil
}

func (r *gormRoleProfileRepository) UpsertTeacherProfile(ctx context.Context, tx *gorm.DB, profile *model.TeacherProfile) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"school", "subjects", "grades"}),
	}).Create(profile)
	if result.Error != nil {
		logger.Error("Error upserting teacher profile in DB",
			"error", result.Error,
			"user_id", profile.UserID.String(),
		)
		return fmt.Errorf("gormRoleProfileRepository.UpsertTeacherProfile: %w", result.Error)
	}
	return nil
}

func (r *gormRoleProfileRepository) FindStudentProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.StudentProfile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.StudentProfile
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding student profile in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormRoleProfileRepository.FindStudentProfile: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormRoleProfileRepository) FindTeacherProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.TeacherProfile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.TeacherProfile
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding teacher profile in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormRoleProfileRepository.FindTeacherProfile: %w", result.Error)
	}
	return &profile, nil
}

// FindProfilesMissingRoleRow は、ロールが確定しているのに詳細行が存在しないプロフィールを列挙します。
// 整合性回復バッチから呼ばれます。
func (r *gormRoleProfileRepository) FindProfilesMissingRoleRow(ctx context.Context, db *gorm.DB, role string) ([]*model.Profile, error) {
	logger := middleware.GetLogger(ctx)

	detailTable := "student_profiles"
	if role == model.RoleTeacher {
		detailTable = "teacher_profiles"
	}

	var profiles []*model.Profile
	result := db.WithContext(ctx).
		Where("role = ?", role).
		Where(fmt.Sprintf("id NOT IN (SELECT user_id FROM %s)", detailTable)).
		Find(&profiles)
	if result.Error != nil {
		logger.Error("Error finding profiles missing role row in DB",
			"error", result.Error,
			"role", role,
		)
		return nil, fmt.Errorf("gormRoleProfileRepository.FindProfilesMissingRoleRow: %w", result.Error)
	}
	return profiles, nil
}
