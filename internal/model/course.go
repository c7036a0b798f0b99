// internal/model/course.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Course はコース（講座）を表します
type Course struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description"`
	ImageURL     *string    `gorm:"default:null" json:"image_url,omitempty"`
	InstructorID *uuid.UUID `gorm:"type:uuid;index;default:null" json:"instructor_id,omitempty"` // 移行時に対応が取れない場合はNULL
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 関連 (Preload用)
	Lessons []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Lesson はコース内の1レッスン
type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	VideoURL  *string   `gorm:"default:null" json:"video_url,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Enrollment はユーザーとコースの受講関係
type Enrollment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_enroll_user_course,unique" json:"user_id"`
	CourseID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_enroll_user_course,unique" json:"course_id"`
	EnrolledAt     time.Time  `json:"enrolled_at"`
	Completed      bool       `gorm:"default:false" json:"completed"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Progress はレッスン単位の学習進捗
type Progress struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_progress_user_lesson,unique" json:"user_id"`
	LessonID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_progress_user_lesson,unique" json:"lesson_id"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

func (Progress) TableName() string {
	return "progress"
}

// UserProgress は GET /api/users/me/progress のレスポンス本体
type UserProgress struct {
	Enrollments []*Enrollment `json:"enrollments"`
	Progress    []*Progress   `json:"progress"`
}

// Certificate はコース修了証
type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	IssuedDate     time.Time `json:"issued_date"`
	CertificateURL *string   `gorm:"default:null" json:"certificate_url,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}
