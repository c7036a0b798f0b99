//go:generate mockery --name CourseRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseRepository インターフェース
type CourseRepository interface {
	ListCourses(ctx context.Context, db *gorm.DB) ([]*model.Course, error)
	FindCourseWithLessons(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error)
	ListEnrollments(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Enrollment, error)
	ListProgress(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Progress, error)
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

func (r *gormCourseRepository) ListCourses(ctx context.Context, db *gorm.DB) ([]*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var courses []*model.Course
	result := db.WithContext(ctx).Order("created_at DESC").Find(&courses)
	if result.Error != nil {
		logger.Error("Error listing courses in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCourseRepository.ListCourses: %w", result.Error)
	}
	return courses, nil
}

func (r *gormCourseRepository) FindCourseWithLessons(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		Where("id = ?", courseID).First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course with lessons in DB",
			"error", result.Error,
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormCourseRepository.FindCourseWithLessons: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) ListEnrollments(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollments []*model.Enrollment
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("enrolled_at DESC").Find(&enrollments)
	if result.Error != nil {
		logger.Error("Error listing enrollments in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormCourseRepository.ListEnrollments: %w", result.Error)
	}
	return enrollments, nil
}

func (r *gormCourseRepository) ListProgress(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Progress, error) {
	logger := middleware.GetLogger(ctx)
	var progress []*model.Progress
	result := db.WithContext(ctx).Where("user_id = ?", userID).Find(&progress)
	if result.Error != nil {
		logger.Error("Error listing progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormCourseRepository.ListProgress: %w", result.Error)
	}
	return progress, nil
}
