// internal/model/legacy.go
package model

import "time"

// 移行元MySQLスキーマの行構造体。IDはすべてAUTO_INCREMENTの整数。
// ETLからの読み取り専用で、アプリ本体はこれらを参照しない。

type LegacyUser struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	FirstName      string     `gorm:"column:first_name"`
	LastName       string     `gorm:"column:last_name"`
	Email          string     `gorm:"column:email"`
	Password       string     `gorm:"column:password"` // bcryptハッシュ。平文は復元できない
	GoogleID       *string    `gorm:"column:google_id"`
	ProfilePicture *string    `gorm:"column:profile_picture"`
	Role           string     `gorm:"column:role"`
	IsVerified     bool       `gorm:"column:is_verified"`
	CreatedAt      *time.Time `gorm:"column:created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at"`
}

func (LegacyUser) TableName() string { return "users" }

type LegacyCourse struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	Title        string     `gorm:"column:title"`
	Description  string     `gorm:"column:description"`
	ImageURL     *string    `gorm:"column:image_url"`
	InstructorID *int64     `gorm:"column:instructor_id"`
	CreatedAt    *time.Time `gorm:"column:created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
}

func (LegacyCourse) TableName() string { return "courses" }

type LegacyLesson struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	CourseID  int64      `gorm:"column:course_id"`
	Title     string     `gorm:"column:title"`
	Content   string     `gorm:"column:content"`
	VideoURL  *string    `gorm:"column:video_url"`
	Position  int        `gorm:"column:position"`
	CreatedAt *time.Time `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (LegacyLesson) TableName() string { return "lessons" }

type LegacyEnrollment struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         int64      `gorm:"column:user_id"`
	CourseID       int64      `gorm:"column:course_id"`
	EnrolledAt     *time.Time `gorm:"column:enrolled_at"`
	Completed      bool       `gorm:"column:completed"`
	CompletionDate *time.Time `gorm:"column:completion_date"`
}

func (LegacyEnrollment) TableName() string { return "enrollments" }

type LegacyProgress struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	UserID       int64      `gorm:"column:user_id"`
	LessonID     int64      `gorm:"column:lesson_id"`
	Completed    bool       `gorm:"column:completed"`
	LastAccessed *time.Time `gorm:"column:last_accessed"`
}

func (LegacyProgress) TableName() string { return "progress" }

type LegacyQuiz struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	LessonID    int64      `gorm:"column:lesson_id"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	CreatedAt   *time.Time `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (LegacyQuiz) TableName() string { return "quizzes" }

type LegacyQuizQuestion struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	QuizID       int64  `gorm:"column:quiz_id"`
	Question     string `gorm:"column:question"`
	QuestionType string `gorm:"column:question_type"`
	Position     int    `gorm:"column:position"`
}

func (LegacyQuizQuestion) TableName() string { return "quiz_questions" }

type LegacyQuizAnswer struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	QuestionID int64  `gorm:"column:question_id"`
	AnswerText string `gorm:"column:answer_text"`
	IsCorrect  bool   `gorm:"column:is_correct"`
}

func (LegacyQuizAnswer) TableName() string { return "quiz_answers" }

type LegacyQuizAttempt struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id"`
	QuizID      int64      `gorm:"column:quiz_id"`
	Score       *float64   `gorm:"column:score"`
	StartedAt   *time.Time `gorm:"column:started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

func (LegacyQuizAttempt) TableName() string { return "quiz_attempts" }

type LegacyUserAnswer struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	AttemptID  int64   `gorm:"column:attempt_id"`
	QuestionID int64   `gorm:"column:question_id"`
	AnswerID   *int64  `gorm:"column:answer_id"`
	TextAnswer *string `gorm:"column:text_answer"`
	IsCorrect  bool    `gorm:"column:is_correct"`
}

func (LegacyUserAnswer) TableName() string { return "user_answers" }

type LegacyCertificate struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         int64      `gorm:"column:user_id"`
	CourseID       int64      `gorm:"column:course_id"`
	IssuedDate     *time.Time `gorm:"column:issued_date"`
	CertificateURL *string    `gorm:"column:certificate_url"`
}

func (LegacyCertificate) TableName() string { return "certificates" }

type LegacyNotification struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id"`
	Title     string     `gorm:"column:title"`
	Message   string     `gorm:"column:message"`
	IsRead    bool       `gorm:"column:is_read"`
	CreatedAt *time.Time `gorm:"column:created_at"`
}

func (LegacyNotification) TableName() string { return "notifications" }

type LegacyUserSetting struct {
	ID                 int64  `gorm:"column:id;primaryKey"`
	UserID             int64  `gorm:"column:user_id"`
	EmailNotifications bool   `gorm:"column:email_notifications"`
	Theme              string `gorm:"column:theme"`
	Language           string `gorm:"column:language"`
}

func (LegacyUserSetting) TableName() string { return "user_settings" }

// subjects / grades はMySQL側ではJSON文字列として保存されている
type LegacyStudentProfile struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id"`
	Grade     string     `gorm:"column:grade"`
	Subjects  string     `gorm:"column:subjects"`
	CreatedAt *time.Time `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (LegacyStudentProfile) TableName() string { return "student_profiles" }

type LegacyTeacherProfile struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id"`
	School    string     `gorm:"column:school"`
	Subjects  string     `gorm:"column:subjects"`
	Grades    string     `gorm:"column:grades"`
	CreatedAt *time.Time `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (LegacyTeacherProfile) TableName() string { return "teacher_profiles" }
