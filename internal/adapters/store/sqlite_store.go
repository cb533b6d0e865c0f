package store

import (
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var sqliteDialect = dialect{
	name: "SQLite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS bench_runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			dataset TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bench_runs_started_at ON bench_runs(started_at)`,
		`CREATE TABLE IF NOT EXISTS bench_results (
			run_id TEXT NOT NULL REFERENCES bench_runs(id),
			seq INTEGER NOT NULL,
			model TEXT NOT NULL,
			score REAL,
			precision_score REAL,
			recall_score REAL,
			f1_score REAL,
			fit_nanos INTEGER,
			PRIMARY KEY (run_id, seq)
		)`,
	},
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string, timeout time.Duration, logger *zap.Logger) (*SQLStore, error) {
	return openSQLStore("sqlite3", dbPath, sqliteDialect, timeout, logger)
}
