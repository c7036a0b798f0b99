// internal/etl/report.go
package etl

import (
	"log/slog"
	"sort"
	"sync"
)

// SkipRecord は移行できなかった1行の記録です。
type SkipRecord struct {
	Entity   string `json:"entity"`
	LegacyID int64  `json:"legacy_id"`
	Reason   string `json:"reason"`
}

// Report は移行結果の集計です。どの行がなぜスキップされたかを後から追えるようにします。
type Report struct {
	mu       sync.Mutex
	migrated map[string]int
	skips    []SkipRecord
}

func NewReport() *Report {
	return &Report{migrated: make(map[string]int)}
}

func (r *Report) Migrated(entity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.migrated[entity]++
}

func (r *Report) Skip(logger *slog.Logger, entity string, legacyID int64, reason string) {
	r.mu.Lock()
	r.skips = append(r.skips, SkipRecord{Entity: entity, LegacyID: legacyID, Reason: reason})
	r.mu.Unlock()

	logger.Warn("Skipping row",
		"entity", entity,
		"legacy_id", legacyID,
		"reason", reason,
	)
}

func (r *Report) MigratedCount(entity string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.migrated[entity]
}

func (r *Report) Skips() []SkipRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SkipRecord, len(r.skips))
	copy(out, r.skips)
	return out
}

// Summary は集計結果をログに出力します。
func (r *Report) Summary(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entities := make([]string, 0, len(r.migrated))
	for entity := range r.migrated {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	for _, entity := range entities {
		logger.Info("Migration result", "entity", entity, "migrated", r.migrated[entity])
	}
	logger.Info("Migration finished", "total_skipped", len(r.skips))

	for _, skip := range r.skips {
		logger.Warn("Skipped row",
			"entity", skip.Entity,
			"legacy_id", skip.LegacyID,
			"reason", skip.Reason,
		)
	}
}
