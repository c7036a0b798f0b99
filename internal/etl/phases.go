// internal/etl/phases.go
package etl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LrenceLapating/Pathfinder/internal/model"
	"github.com/LrenceLapating/Pathfinder/internal/provider"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// migrateUsers はレガシーユーザーを認証プロバイダに登録し、プロフィール行を作成します。
// プロバイダが採番したUUIDが以後のすべての外部キーの基準になります。
func (m *Migrator) migrateUsers(ctx context.Context) error {
	var rows []model.LegacyUser
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateUsers: load legacy users: %w", err)
	}

	for _, row := range rows {
		password, err := tempPassword()
		if err != nil {
			return fmt.Errorf("etl.migrateUsers: generate password: %w", err)
		}

		identity, err := m.provider.AdminCreateUser(ctx, provider.AdminCreateUserParams{
			Email:        row.Email,
			Password:     password,
			EmailConfirm: row.IsVerified,
			UserMetadata: map[string]any{
				"first_name": row.FirstName,
				"last_name":  row.LastName,
				"legacy_id":  row.ID,
			},
		})
		if err != nil {
			m.report.Skip(m.logger, "users", row.ID, fmt.Sprintf("provider rejected user: %v", err))
			continue
		}

		userID, err := uuid.Parse(identity.ID)
		if err != nil {
			m.report.Skip(m.logger, "users", row.ID, fmt.Sprintf("provider returned invalid ID %q", identity.ID))
			continue
		}

		profile := &model.Profile{
			ID:             userID,
			FirstName:      row.FirstName,
			LastName:       row.LastName,
			Email:          row.Email,
			GoogleID:       row.GoogleID,
			ProfilePicture: row.ProfilePicture,
			Role:           row.Role,
			IsVerified:     row.IsVerified,
			CreatedAt:      tsOrNow(row.CreatedAt),
			UpdatedAt:      tsOrNow(row.UpdatedAt),
		}
		if err := m.dest.WithContext(ctx).Create(profile).Error; err != nil {
			m.report.Skip(m.logger, "users", row.ID, fmt.Sprintf("profile insert failed: %v", err))
			continue
		}

		m.ids.Users[row.ID] = userID
		m.report.Migrated("users")
	}
	return nil
}

// migrateRoleProfiles は student_profiles / teacher_profiles を移行します。
// subjects / grades はレガシー側でJSON文字列なので配列に展開します。
func (m *Migrator) migrateRoleProfiles(ctx context.Context) error {
	var students []model.LegacyStudentProfile
	if err := m.legacy.WithContext(ctx).Find(&students).Error; err != nil {
		return fmt.Errorf("etl.migrateRoleProfiles: load legacy student profiles: %w", err)
	}

	for _, row := range students {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "role_profiles", row.ID, fmt.Sprintf("student profile references unmapped user %d", row.UserID))
			continue
		}
		detail := &model.StudentProfile{
			UserID:    userID,
			Grade:     row.Grade,
			Subjects:  parseJSONList(row.Subjects),
			CreatedAt: tsOrNow(row.CreatedAt),
			UpdatedAt: tsOrNow(row.UpdatedAt),
		}
		if err := m.dest.WithContext(ctx).Create(detail).Error; err != nil {
			m.report.Skip(m.logger, "role_profiles", row.ID, fmt.Sprintf("student profile insert failed: %v", err))
			continue
		}
		m.report.Migrated("role_profiles")
	}

	var teachers []model.LegacyTeacherProfile
	if err := m.legacy.WithContext(ctx).Find(&teachers).Error; err != nil {
		return fmt.Errorf("etl.migrateRoleProfiles: load legacy teacher profiles: %w", err)
	}

	for _, row := range teachers {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "role_profiles", row.ID, fmt.Sprintf("teacher profile references unmapped user %d", row.UserID))
			continue
		}
		detail := &model.TeacherProfile{
			UserID:    userID,
			School:    row.School,
			Subjects:  parseJSONList(row.Subjects),
			Grades:    parseJSONList(row.Grades),
			CreatedAt: tsOrNow(row.CreatedAt),
			UpdatedAt: tsOrNow(row.UpdatedAt),
		}
		if err := m.dest.WithContext(ctx).Create(detail).Error; err != nil {
			m.report.Skip(m.logger, "role_profiles", row.ID, fmt.Sprintf("teacher profile insert failed: %v", err))
			continue
		}
		m.report.Migrated("role_profiles")
	}
	return nil
}

// migrateCourses はコースを移行します。
// 講師の対応が取れない場合は行を捨てずに instructor_id をNULLにして残します。
func (m *Migrator) migrateCourses(ctx context.Context) error {
	var rows []model.LegacyCourse
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateCourses: load legacy courses: %w", err)
	}

	for _, row := range rows {
		var instructorID *uuid.UUID
		if row.InstructorID != nil {
			if mapped, ok := m.ids.Users[*row.InstructorID]; ok {
				instructorID = &mapped
			} else {
				m.logger.Warn("Course instructor not mapped, keeping course with NULL instructor",
					"legacy_course_id", row.ID,
					"legacy_instructor_id", *row.InstructorID,
				)
			}
		}

		course := &model.Course{
			ID:           uuid.New(),
			Title:        row.Title,
			Description:  row.Description,
			ImageURL:     row.ImageURL,
			InstructorID: instructorID,
			CreatedAt:    tsOrNow(row.CreatedAt),
			UpdatedAt:    tsOrNow(row.UpdatedAt),
		}
		if err := m.dest.WithContext(ctx).Create(course).Error; err != nil {
			m.report.Skip(m.logger, "courses", row.ID, fmt.Sprintf("course insert failed: %v", err))
			continue
		}

		m.ids.Courses[row.ID] = course.ID
		m.report.Migrated("courses")
	}
	return nil
}

func (m *Migrator) migrateLessons(ctx context.Context) error {
	var rows []model.LegacyLesson
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateLessons: load legacy lessons: %w", err)
	}

	for _, row := range rows {
		courseID, ok := m.ids.Courses[row.CourseID]
		if !ok {
			m.report.Skip(m.logger, "lessons", row.ID, fmt.Sprintf("lesson references unmapped course %d", row.CourseID))
			continue
		}

		lesson := &model.Lesson{
			ID:        uuid.New(),
			CourseID:  courseID,
			Title:     row.Title,
			Content:   row.Content,
			VideoURL:  row.VideoURL,
			Position:  row.Position,
			CreatedAt: tsOrNow(row.CreatedAt),
			UpdatedAt: tsOrNow(row.UpdatedAt),
		}
		if err := m.dest.WithContext(ctx).Create(lesson).Error; err != nil {
			m.report.Skip(m.logger, "lessons", row.ID, fmt.Sprintf("lesson insert failed: %v", err))
			continue
		}

		m.ids.Lessons[row.ID] = lesson.ID
		m.report.Migrated("lessons")
	}
	return nil
}

func (m *Migrator) migrateEnrollments(ctx context.Context) error {
	var rows []model.LegacyEnrollment
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateEnrollments: load legacy enrollments: %w", err)
	}

	for _, row := range rows {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "enrollments", row.ID, fmt.Sprintf("enrollment references unmapped user %d", row.UserID))
			continue
		}
		courseID, ok := m.ids.Courses[row.CourseID]
		if !ok {
			m.report.Skip(m.logger, "enrollments", row.ID, fmt.Sprintf("enrollment references unmapped course %d", row.CourseID))
			continue
		}

		enrollment := &model.Enrollment{
			ID:             uuid.New(),
			UserID:         userID,
			CourseID:       courseID,
			EnrolledAt:     tsOrNow(row.EnrolledAt),
			Completed:      row.Completed,
			CompletionDate: row.CompletionDate,
		}
		if err := m.dest.WithContext(ctx).Create(enrollment).Error; err != nil {
			m.report.Skip(m.logger, "enrollments", row.ID, fmt.Sprintf("enrollment insert failed: %v", err))
			continue
		}
		m.report.Migrated("enrollments")
	}
	return nil
}

func (m *Migrator) migrateProgress(ctx context.Context) error {
	var rows []model.LegacyProgress
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateProgress: load legacy progress: %w", err)
	}

	for _, row := range rows {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "progress", row.ID, fmt.Sprintf("progress references unmapped user %d", row.UserID))
			continue
		}
		lessonID, ok := m.ids.Lessons[row.LessonID]
		if !ok {
			m.report.Skip(m.logger, "progress", row.ID, fmt.Sprintf("progress references unmapped lesson %d", row.LessonID))
			continue
		}

		progress := &model.Progress{
			ID:           uuid.New(),
			UserID:       userID,
			LessonID:     lessonID,
			Completed:    row.Completed,
			LastAccessed: row.LastAccessed,
		}
		if err := m.dest.WithContext(ctx).Create(progress).Error; err != nil {
			m.report.Skip(m.logger, "progress", row.ID, fmt.Sprintf("progress insert failed: %v", err))
			continue
		}
		m.report.Migrated("progress")
	}
	return nil
}

func (m *Migrator) migrateQuizzes(ctx context.Context) error {
	var rows []model.LegacyQuiz
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateQuizzes: load legacy quizzes: %w", err)
	}

	for _, row := range rows {
		lessonID, ok := m.ids.Lessons[row.LessonID]
		if !ok {
			m.report.Skip(m.logger, "quizzes", row.ID, fmt.Sprintf("quiz references unmapped lesson %d", row.LessonID))
			continue
		}

		quiz := &model.Quiz{
			ID:          uuid.New(),
			LessonID:    lessonID,
			Title:       row.Title,
			Description: row.Description,
			CreatedAt:   tsOrNow(row.CreatedAt),
			UpdatedAt:   tsOrNow(row.UpdatedAt),
		}
		if err := m.dest.WithContext(ctx).Create(quiz).Error; err != nil {
			m.report.Skip(m.logger, "quizzes", row.ID, fmt.Sprintf("quiz insert failed: %v", err))
			continue
		}

		m.ids.Quizzes[row.ID] = quiz.ID
		m.report.Migrated("quizzes")
	}
	return nil
}

func (m *Migrator) migrateQuizQuestions(ctx context.Context) error {
	var rows []model.LegacyQuizQuestion
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateQuizQuestions: load legacy quiz questions: %w", err)
	}

	for _, row := range rows {
		quizID, ok := m.ids.Quizzes[row.QuizID]
		if !ok {
			m.report.Skip(m.logger, "quiz_questions", row.ID, fmt.Sprintf("question references unmapped quiz %d", row.QuizID))
			continue
		}

		question := &model.QuizQuestion{
			ID:           uuid.New(),
			QuizID:       quizID,
			Question:     row.Question,
			QuestionType: row.QuestionType,
			Position:     row.Position,
		}
		if err := m.dest.WithContext(ctx).Create(question).Error; err != nil {
			m.report.Skip(m.logger, "quiz_questions", row.ID, fmt.Sprintf("question insert failed: %v", err))
			continue
		}

		m.ids.Questions[row.ID] = question.ID
		m.report.Migrated("quiz_questions")
	}
	return nil
}

func (m *Migrator) migrateQuizAnswers(ctx context.Context) error {
	var rows []model.LegacyQuizAnswer
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateQuizAnswers: load legacy quiz answers: %w", err)
	}

	for _, row := range rows {
		questionID, ok := m.ids.Questions[row.QuestionID]
		if !ok {
			m.report.Skip(m.logger, "quiz_answers", row.ID, fmt.Sprintf("answer references unmapped question %d", row.QuestionID))
			continue
		}

		answer := &model.QuizAnswer{
			ID:         uuid.New(),
			QuestionID: questionID,
			AnswerText: row.AnswerText,
			IsCorrect:  row.IsCorrect,
		}
		if err := m.dest.WithContext(ctx).Create(answer).Error; err != nil {
			m.report.Skip(m.logger, "quiz_answers", row.ID, fmt.Sprintf("answer insert failed: %v", err))
			continue
		}

		m.ids.Answers[row.ID] = answer.ID
		m.report.Migrated("quiz_answers")
	}
	return nil
}

func (m *Migrator) migrateQuizAttempts(ctx context.Context) error {
	var rows []model.LegacyQuizAttempt
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateQuizAttempts: load legacy quiz attempts: %w", err)
	}

	for _, row := range rows {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "quiz_attempts", row.ID, fmt.Sprintf("attempt references unmapped user %d", row.UserID))
			continue
		}
		quizID, ok := m.ids.Quizzes[row.QuizID]
		if !ok {
			m.report.Skip(m.logger, "quiz_attempts", row.ID, fmt.Sprintf("attempt references unmapped quiz %d", row.QuizID))
			continue
		}

		attempt := &model.QuizAttempt{
			ID:          uuid.New(),
			UserID:      userID,
			QuizID:      quizID,
			Score:       row.Score,
			StartedAt:   tsOrNow(row.StartedAt),
			CompletedAt: row.CompletedAt,
		}
		if err := m.dest.WithContext(ctx).Create(attempt).Error; err != nil {
			m.report.Skip(m.logger, "quiz_attempts", row.ID, fmt.Sprintf("attempt insert failed: %v", err))
			continue
		}

		m.ids.Attempts[row.ID] = attempt.ID
		m.report.Migrated("quiz_attempts")
	}
	return nil
}

func (m *Migrator) migrateUserAnswers(ctx context.Context) error {
	var rows []model.LegacyUserAnswer
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateUserAnswers: load legacy user answers: %w", err)
	}

	for _, row := range rows {
		attemptID, ok := m.ids.Attempts[row.AttemptID]
		if !ok {
			m.report.Skip(m.logger, "user_answers", row.ID, fmt.Sprintf("user answer references unmapped attempt %d", row.AttemptID))
			continue
		}
		questionID, ok := m.ids.Questions[row.QuestionID]
		if !ok {
			m.report.Skip(m.logger, "user_answers", row.ID, fmt.Sprintf("user answer references unmapped question %d", row.QuestionID))
			continue
		}

		// answer_id は記述式回答ではもともとNULL
		var answerID *uuid.UUID
		if row.AnswerID != nil {
			mapped, ok := m.ids.Answers[*row.AnswerID]
			if !ok {
				m.report.Skip(m.logger, "user_answers", row.ID, fmt.Sprintf("user answer references unmapped answer %d", *row.AnswerID))
				continue
			}
			answerID = &mapped
		}

		userAnswer := &model.UserAnswer{
			ID:         uuid.New(),
			AttemptID:  attemptID,
			QuestionID: questionID,
			AnswerID:   answerID,
			TextAnswer: row.TextAnswer,
			IsCorrect:  row.IsCorrect,
		}
		if err := m.dest.WithContext(ctx).Create(userAnswer).Error; err != nil {
			m.report.Skip(m.logger, "user_answers", row.ID, fmt.Sprintf("user answer insert failed: %v", err))
			continue
		}
		m.report.Migrated("user_answers")
	}
	return nil
}

func (m *Migrator) migrateCertificates(ctx context.Context) error {
	var rows []model.LegacyCertificate
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateCertificates: load legacy certificates: %w", err)
	}

	for _, row := range rows {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "certificates", row.ID, fmt.Sprintf("certificate references unmapped user %d", row.UserID))
			continue
		}
		courseID, ok := m.ids.Courses[row.CourseID]
		if !ok {
			m.report.Skip(m.logger, "certificates", row.ID, fmt.Sprintf("certificate references unmapped course %d", row.CourseID))
			continue
		}

		certificate := &model.Certificate{
			ID:             uuid.New(),
			UserID:         userID,
			CourseID:       courseID,
			IssuedDate:     tsOrNow(row.IssuedDate),
			CertificateURL: row.CertificateURL,
		}
		if err := m.dest.WithContext(ctx).Create(certificate).Error; err != nil {
			m.report.Skip(m.logger, "certificates", row.ID, fmt.Sprintf("certificate insert failed: %v", err))
			continue
		}
		m.report.Migrated("certificates")
	}
	return nil
}

func (m *Migrator) migrateNotifications(ctx context.Context) error {
	var rows []model.LegacyNotification
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateNotifications: load legacy notifications: %w", err)
	}

	for _, row := range rows {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "notifications", row.ID, fmt.Sprintf("notification references unmapped user %d", row.UserID))
			continue
		}

		notification := &model.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     row.Title,
			Message:   row.Message,
			IsRead:    row.IsRead,
			CreatedAt: tsOrNow(row.CreatedAt),
		}
		if err := m.dest.WithContext(ctx).Create(notification).Error; err != nil {
			m.report.Skip(m.logger, "notifications", row.ID, fmt.Sprintf("notification insert failed: %v", err))
			continue
		}
		m.report.Migrated("notifications")
	}
	return nil
}

func (m *Migrator) migrateUserSettings(ctx context.Context) error {
	var rows []model.LegacyUserSetting
	if err := m.legacy.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("etl.migrateUserSettings: load legacy user settings: %w", err)
	}

	for _, row := range rows {
		userID, ok := m.ids.Users[row.UserID]
		if !ok {
			m.report.Skip(m.logger, "user_settings", row.ID, fmt.Sprintf("user setting references unmapped user %d", row.UserID))
			continue
		}

		setting := &model.UserSetting{
			UserID:             userID,
			EmailNotifications: row.EmailNotifications,
			Theme:              row.Theme,
			Language:           row.Language,
		}
		if err := m.dest.WithContext(ctx).Create(setting).Error; err != nil {
			m.report.Skip(m.logger, "user_settings", row.ID, fmt.Sprintf("user setting insert failed: %v", err))
			continue
		}
		m.report.Migrated("user_settings")
	}
	return nil
}

// --- ヘルパー関数 ---

func tsOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}

// parseJSONList はレガシーDBのJSON文字列カラム (例: `["Math","Science"]`) を配列に変換します。
// 不正な値は空配列として扱います。
func parseJSONList(raw string) pq.StringArray {
	if raw == "" {
		return pq.StringArray{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return pq.StringArray{}
	}
	return pq.StringArray(out)
}
