// cmd/migrate/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/LrenceLapating/Pathfinder/internal/config"
	"github.com/LrenceLapating/Pathfinder/internal/etl"
	"github.com/LrenceLapating/Pathfinder/internal/provider"
	"github.com/LrenceLapating/Pathfinder/internal/repository"

	"gorm.io/gorm"
)

// レガシーMySQLから移行先 (Postgres + 認証プロバイダ) への一括移行を実行するバッチ。
// 再実行する場合は移行先を空にしてから行う前提。
func main() {
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("Migration starting...", slog.String("app", config.Cfg.App.Name))

	if config.Cfg.LegacyDatabase.DSN == "" {
		slog.Error("LEGACY_DATABASE_DSN is not configured")
		os.Exit(1)
	}

	legacy, err := repository.NewLegacyDB(config.Cfg.LegacyDatabase.DSN, logger)
	if err != nil {
		slog.Error("Error connecting to legacy database", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeDB(legacy, "legacy")

	dest, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error connecting to destination database", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeDB(dest, "destination")

	authProvider := provider.NewSupabaseClient(&config.Cfg.Supabase)

	// Ctrl+C で中断できるようにする
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrator := etl.NewMigrator(legacy, dest, authProvider, logger)
	report, err := migrator.Run(ctx)
	if err != nil {
		slog.Error("Migration completed with errors", slog.Any("error", err), slog.Int("skipped", len(report.Skips())))
		os.Exit(1)
	}

	slog.Info("Migration completed", slog.Int("skipped", len(report.Skips())))
}

func closeDB(db *gorm.DB, name string) {
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB", slog.String("db", name), slog.Any("error", err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("Error closing database connection", slog.String("db", name), slog.Any("error", err))
	}
}
