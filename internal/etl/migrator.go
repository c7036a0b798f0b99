// internal/etl/migrator.go
package etl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/LrenceLapating/Pathfinder/internal/provider"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDMaps はレガシーの整数IDと移行先UUIDの対応表です。
// フェーズ間で明示的に受け渡し、グローバル状態には置きません。
type IDMaps struct {
	Users     map[int64]uuid.UUID
	Courses   map[int64]uuid.UUID
	Lessons   map[int64]uuid.UUID
	Quizzes   map[int64]uuid.UUID
	Questions map[int64]uuid.UUID
	Answers   map[int64]uuid.UUID
	Attempts  map[int64]uuid.UUID
}

func NewIDMaps() *IDMaps {
	return &IDMaps{
		Users:     make(map[int64]uuid.UUID),
		Courses:   make(map[int64]uuid.UUID),
		Lessons:   make(map[int64]uuid.UUID),
		Quizzes:   make(map[int64]uuid.UUID),
		Questions: make(map[int64]uuid.UUID),
		Answers:   make(map[int64]uuid.UUID),
		Attempts:  make(map[int64]uuid.UUID),
	}
}

// Migrator はレガシーMySQLから移行先Postgres + 認証プロバイダへの一括移行を実行します。
type Migrator struct {
	legacy   *gorm.DB
	dest     *gorm.DB
	provider provider.AuthProvider
	logger   *slog.Logger

	ids    *IDMaps
	report *Report
}

func NewMigrator(legacy, dest *gorm.DB, authProvider provider.AuthProvider, logger *slog.Logger) *Migrator {
	return &Migrator{
		legacy:   legacy,
		dest:     dest,
		provider: authProvider,
		logger:   logger,
		ids:      NewIDMaps(),
		report:   NewReport(),
	}
}

// IDs は構築済みの対応表を返します（テスト・検証用）。
func (m *Migrator) IDs() *IDMaps { return m.ids }

// Report は移行結果の集計を返します。
func (m *Migrator) Report() *Report { return m.report }

type phase struct {
	name string
	fn   func(context.Context) error
}

// Run は依存順にすべてのフェーズを実行します。
// 親テーブルのフェーズが失敗しても後続フェーズは実行され、
// 対応の取れない子行は1行ずつスキップとして記録されます。
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	phases := []phase{
		{"users", m.migrateUsers},
		{"role_profiles", m.migrateRoleProfiles},
		{"courses", m.migrateCourses},
		{"lessons", m.migrateLessons},
		{"enrollments", m.migrateEnrollments},
		{"progress", m.migrateProgress},
		{"quizzes", m.migrateQuizzes},
		{"quiz_questions", m.migrateQuizQuestions},
		{"quiz_answers", m.migrateQuizAnswers},
		{"quiz_attempts", m.migrateQuizAttempts},
		{"user_answers", m.migrateUserAnswers},
		{"certificates", m.migrateCertificates},
		{"notifications", m.migrateNotifications},
		{"user_settings", m.migrateUserSettings},
	}

	var firstErr error
	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return m.report, err
		}

		m.logger.Info("Starting migration phase", "phase", p.name)
		if err := p.fn(ctx); err != nil {
			m.logger.Error("Migration phase failed", "phase", p.name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		m.logger.Info("Migration phase completed", "phase", p.name, "migrated", m.report.MigratedCount(p.name))
	}

	m.report.Summary(m.logger)
	return m.report, firstErr
}

// tempPassword は移行ユーザーに割り当てる使い捨てのパスワードを生成します。
// 旧システムのハッシュから平文は復元できないため、全員パスワード再設定が前提になります。
func tempPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
