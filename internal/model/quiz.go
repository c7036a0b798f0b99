// internal/model/quiz.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Quiz はレッスンに紐づく小テスト
type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID    uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID       uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Question     string    `gorm:"not null" json:"question"`
	QuestionType string    `gorm:"type:varchar(30)" json:"question_type"`
	Position     int       `gorm:"not null;default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type QuizAnswer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	AnswerText string    `gorm:"not null" json:"answer_text"`
	IsCorrect  bool      `gorm:"default:false" json:"is_correct"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

// QuizAttempt はユーザーの受験履歴
type QuizAttempt struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Score       *float64   `json:"score,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// UserAnswer は受験中の個々の回答。answer_id は記述式の場合NULL。
type UserAnswer struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"attempt_id"`
	QuestionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"question_id"`
	AnswerID   *uuid.UUID `gorm:"type:uuid;default:null" json:"answer_id,omitempty"`
	TextAnswer *string    `gorm:"default:null" json:"text_answer,omitempty"`
	IsCorrect  bool       `gorm:"default:false" json:"is_correct"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
