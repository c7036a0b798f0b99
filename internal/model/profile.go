// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Profile は外部認証プロバイダのユーザーをアプリ側に投影した1:1のレコードです。
// 主キーはプロバイダが発行したIDをそのまま共有する (profile.id == identity.id)。
type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string    `gorm:"not null" json:"first_name"`
	LastName       string    `gorm:"not null" json:"last_name"`
	Email          string    `gorm:"unique;not null" json:"email"`
	GoogleID       *string   `gorm:"uniqueIndex;default:null" json:"-"`
	ProfilePicture *string   `gorm:"default:null" json:"profile_picture,omitempty"`
	Role           string    `gorm:"type:varchar(20);default:''" json:"role"`
	IsVerified     bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// StudentProfile は役割選択後に作られる生徒固有の情報（user_idにつき1行）
type StudentProfile struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Grade     string         `json:"grade"`
	Subjects  pq.StringArray `gorm:"type:text[]" json:"subjects"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

// TeacherProfile は教師固有の情報（user_idにつき1行）
type TeacherProfile struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	School    string         `json:"school"`
	Subjects  pq.StringArray `gorm:"type:text[]" json:"subjects"`
	Grades    pq.StringArray `gorm:"type:text[]" json:"grades"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profiles"
}

// UserSetting は通知・表示設定
type UserSetting struct {
	UserID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	EmailNotifications bool      `gorm:"default:true" json:"email_notifications"`
	Theme              string    `json:"theme"`
	Language           string    `json:"language"`
}

func (UserSetting) TableName() string {
	return "user_settings"
}

// Notification はユーザー宛のお知らせ
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
