//go:generate mockery --name CourseService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"
	"github.com/LrenceLapating/Pathfinder/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseService はダッシュボード向けの読み取り系APIを提供します。
type CourseService interface {
	ListCourses(ctx context.Context) ([]*model.Course, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	GetUserProgress(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error)
}

type courseService struct {
	db         *gorm.DB
	courseRepo repository.CourseRepository
}

func NewCourseService(db *gorm.DB, courseRepo repository.CourseRepository) CourseService {
	return &courseService{db: db, courseRepo: courseRepo}
}

func (s *courseService) ListCourses(ctx context.Context) ([]*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	courses, err := s.courseRepo.ListCourses(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list courses", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}
	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	course, err := s.courseRepo.FindCourseWithLessons(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Course not found", "", model.ErrNotFound)
		}
		logger.Error("Failed to get course", "error", err, "course_id", courseID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}
	return course, nil
}

func (s *courseService) GetUserProgress(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx)

	enrollments, err := s.courseRepo.ListEnrollments(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list enrollments", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	progress, err := s.courseRepo.ListProgress(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list progress", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Server error", "", err)
	}

	return &model.UserProgress{
		Enrollments: enrollments,
		Progress:    progress,
	}, nil
}
